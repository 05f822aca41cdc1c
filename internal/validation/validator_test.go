package validation

import (
	"testing"

	"github.com/stretchr/testify/require"

	canvaserrors "github.com/alexisbeaulieu97/canvasgen/pkg/errors"
)

type sampleFont struct {
	Family string `yaml:"family" validate:"required"`
	Style  string `yaml:"style" validate:"required,font_style"`
}

type sampleConfig struct {
	Level string     `yaml:"level" validate:"log_level"`
	Node  string     `json:"nodeId" validate:"omitempty,node_id"`
	Font  sampleFont `yaml:"font"`
}

func TestGetValidatorReturnsSingleton(t *testing.T) {
	t.Parallel()

	require.Same(t, GetValidator(), GetValidator())
}

func TestStructReportsTaggedFieldPath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		value sampleConfig
		field string
	}{
		{
			name:  "bad log level",
			value: sampleConfig{Level: "loud", Font: sampleFont{Family: "Inter", Style: "Regular"}},
			field: "level",
		},
		{
			name:  "bad node id",
			value: sampleConfig{Node: "placeholder_id", Font: sampleFont{Family: "Inter", Style: "Regular"}},
			field: "nodeId",
		},
		{
			name:  "bad font style",
			value: sampleConfig{Font: sampleFont{Family: "Inter", Style: "-bold-"}},
			field: "font.style",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := Struct(tc.value)
			require.Error(t, err)

			var ve *canvaserrors.ValidationError
			require.ErrorAs(t, err, &ve)
			require.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestStructAcceptsValidValues(t *testing.T) {
	t.Parallel()

	err := Struct(sampleConfig{
		Level: "DEBUG",
		Node:  "I12:3;4:5",
		Font:  sampleFont{Family: "Inter", Style: "Semi Bold"},
	})
	require.NoError(t, err)
}

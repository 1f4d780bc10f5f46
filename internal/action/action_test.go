package action_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-ppl/internal/action"
)

func TestBuildURL(t *testing.T) {
	cases := []struct {
		name     string
		template string
		target   string
		want     string
	}{
		{"tel", "tel:%s", "555-0100", "tel:555-0100"},
		{"spaces stripped", "tel:%s", "555 010 0100", "tel:5550100100"},
		{"mailto", "mailto:%s", "jane@x.com", "mailto:jane@x.com"},
		{"callto", "callto:%s", "+952 12-126-7463", "callto:+95212-126-7463"},
		{"single substitution", "x:%s/%s", "val", "x:val/%s"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, action.BuildURL(tc.template, tc.target))
		})
	}
}

package schema_test

import (
	"reflect"
	"testing"

	"github.com/omniagent-io/omniagent/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchRequest struct {
	Origin      string `json:"origin" jsonschema:"title=Origin,description=Departure city or airport code"`
	Destination string `json:"destination" jsonschema:"title=Destination,description=Arrival city or airport code"`
	Date        string `json:"date,omitempty" jsonschema:"title=Date,description=Travel date in YYYY-MM-DD format"`
}

func TestSchema(t *testing.T) {
	s, err := schema.New(reflect.TypeOf(searchRequest{}))
	require.NoError(t, err)
	require.NotNil(t, s.Parameters)

	assert.Equal(t, "object", s.Parameters.Type)
	assert.Equal(t, []string{"origin", "destination"}, s.Parameters.Required)

	props := s.Parameters.Properties
	require.NotNil(t, props)
	origin, ok := props.Get("origin")
	require.True(t, ok)
	assert.Equal(t, "string", origin.Type)
	assert.Equal(t, "Origin", origin.Title)

	// the schema is cached per type
	s2, err := schema.New(reflect.TypeOf(searchRequest{}))
	require.NoError(t, err)
	assert.Same(t, s, s2)
}

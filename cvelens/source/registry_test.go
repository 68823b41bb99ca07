package source

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	sourceType string
}

func (s *stubSource) Type() string          { return s.sourceType }
func (s *stubSource) DisplayName() string   { return s.sourceType }
func (s *stubSource) Check() (bool, string) { return true, "" }
func (s *stubSource) FetchTrackers(FetchFilters) (RecordIterator, error) {
	return NewSliceIterator(nil, nil), nil
}
func (s *stubSource) FetchProjects() ([]ProjectRef, error) { return nil, nil }

func TestRegistry(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Register("jira", func() (Source, error) {
		return &stubSource{sourceType: "jira"}, nil
	}))
	require.NoError(t, registry.Register("github", func() (Source, error) {
		return &stubSource{sourceType: "github"}, nil
	}))

	assert.Equal(t, []string{"github", "jira"}, registry.Types())

	src, err := registry.Get("jira")
	require.NoError(t, err)
	assert.Equal(t, "jira", src.Type())

	_, err = registry.Get("bugzilla")
	assert.Error(t, err)

	assert.Error(t, registry.Register("jira", func() (Source, error) {
		return nil, nil
	}))
}

func TestSliceIterator(t *testing.T) {
	t.Run("yields all records then stops", func(t *testing.T) {
		it := NewSliceIterator([]Record{
			{SourceKey: "A-1"},
			{SourceKey: "A-2"},
		}, nil)

		var keys []string
		for it.Next() {
			keys = append(keys, it.Record().SourceKey)
		}
		assert.Equal(t, []string{"A-1", "A-2"}, keys)
		assert.NoError(t, it.Err())
	})

	t.Run("yields error only after exhaustion", func(t *testing.T) {
		streamErr := errors.New("stream cut short")
		it := NewSliceIterator([]Record{{SourceKey: "A-1"}}, streamErr)

		require.True(t, it.Next())
		assert.NoError(t, it.Err())

		assert.False(t, it.Next())
		assert.ErrorIs(t, it.Err(), streamErr)
	})
}

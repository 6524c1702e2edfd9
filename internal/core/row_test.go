package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapRow map[string]any

func (r mapRow) IsNull(column string) bool {
	v, ok := r[column]
	return !ok || v == nil
}

func (r mapRow) Value(column string) (any, error) {
	return r[column], nil
}

func TestReadRow(t *testing.T) {
	t.Run("driver values are converted per column kind", func(t *testing.T) {
		s, err := ReadRow(mapRow{
			"id":         []byte("12"),
			"name":       []byte("Optics"),
			"teacher_id": int64(4),
			"classroom":  nil,
		}, subjectSchema(t))
		require.NoError(t, err)

		id, err := s.Int("id")
		require.NoError(t, err)
		assert.Equal(t, int64(12), id)

		name, err := s.Text("name")
		require.NoError(t, err)
		assert.Equal(t, "Optics", name)

		teacher, ok, err := s.OptionalInt("teacher_id")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(4), teacher)

		assert.False(t, s.HasData("classroom"))
	})

	t.Run("strings are accepted", func(t *testing.T) {
		s, err := ReadRow(mapRow{"id": "5", "name": "law"}, facultySchema(t))
		require.NoError(t, err)
		id, err := s.Int("id")
		require.NoError(t, err)
		assert.Equal(t, int64(5), id)
	})

	t.Run("non numeric integer", func(t *testing.T) {
		_, err := ReadRow(mapRow{"id": []byte("x"), "name": "law"}, facultySchema(t))
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})

	t.Run("unsupported driver type", func(t *testing.T) {
		_, err := ReadRow(mapRow{"id": 1.5, "name": "law"}, facultySchema(t))
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})

	t.Run("text over declared length", func(t *testing.T) {
		s := MustSchema(NewSchema("t", []*Column{NewTextColumn("code", 2, NotNull)}))
		_, err := ReadRow(mapRow{"code": "abc"}, s)
		assert.ErrorIs(t, err, ErrConstraintViolation)
	})
}

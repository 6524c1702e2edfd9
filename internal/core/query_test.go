package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateQuery(t *testing.T) {
	t.Run("columns only", func(t *testing.T) {
		assert.Equal(t,
			`CREATE TABLE IF NOT EXISTS "faculty" ("id" INT NOT NULL PRIMARY KEY AUTO_INCREMENT, "name" VARCHAR(255) NOT NULL);`,
			facultySchema(t).CreateQuery())
	})

	t.Run("columns then references", func(t *testing.T) {
		assert.Equal(t,
			`CREATE TABLE IF NOT EXISTS "subject" (`+
				`"id" INT NOT NULL PRIMARY KEY AUTO_INCREMENT, `+
				`"name" VARCHAR(255) NOT NULL, `+
				`"teacher_id" INT, `+
				`"classroom" VARCHAR(32), `+
				`FOREIGN KEY ("teacher_id") REFERENCES "teacher" ("id"));`,
			subjectSchema(t).CreateQuery())
	})
}

func TestDropQuery(t *testing.T) {
	assert.Equal(t, `DROP TABLE "faculty";`, facultySchema(t).DropQuery())
}

func TestSelectQuery(t *testing.T) {
	assert.Equal(t, `SELECT "id", "name", "teacher_id", "classroom" FROM "subject";`, subjectSchema(t).SelectQuery())
}

func TestInsertQuery(t *testing.T) {
	t.Run("faculty upsert", func(t *testing.T) {
		s := facultySchema(t)
		require.NoError(t, s.SetColumnData("id", IntValue(1)))
		require.NoError(t, s.SetColumnData("name", TextValue("science")))

		q, err := s.InsertQuery()
		require.NoError(t, err)
		assert.Equal(t,
			`INSERT INTO "faculty" ("id", "name") VALUES ('1', 'science') ON DUPLICATE KEY UPDATE "id" = VALUES("id"), "name" = VALUES("name");`,
			q)
	})

	t.Run("empty nullable columns are omitted", func(t *testing.T) {
		s := subjectSchema(t)
		require.NoError(t, s.SetInt("id", 3))
		require.NoError(t, s.SetText("name", "Physics"))
		require.NoError(t, s.SetText("classroom", "A-1"))

		q, err := s.InsertQuery()
		require.NoError(t, err)
		assert.Equal(t,
			`INSERT INTO "subject" ("id", "name", "classroom") VALUES ('3', 'Physics', 'A-1') ON DUPLICATE KEY UPDATE "id" = VALUES("id"), "name" = VALUES("name"), "classroom" = VALUES("classroom");`,
			q)
	})

	t.Run("empty auto increment column fails", func(t *testing.T) {
		s := facultySchema(t)
		require.NoError(t, s.SetText("name", "science"))

		q, err := s.InsertQuery()
		require.ErrorIs(t, err, ErrConstraintViolation)
		assert.Empty(t, q)

		var e *Error
		require.True(t, errors.As(err, &e))
		assert.Equal(t, "id", e.Column)
	})

	t.Run("missing required value fails", func(t *testing.T) {
		s := facultySchema(t)
		require.NoError(t, s.SetInt("id", 1))

		q, err := s.InsertQuery()
		require.ErrorIs(t, err, ErrConstraintViolation)
		assert.Empty(t, q)

		var e *Error
		require.True(t, errors.As(err, &e))
		assert.Equal(t, "name", e.Column)
	})

	t.Run("nothing to insert", func(t *testing.T) {
		s, err := NewSchema("week_type", []*Column{NewSerialColumn("id"), NewTextColumn("note", 0, Nullable)})
		require.NoError(t, err)

		_, err = s.InsertQuery()
		assert.ErrorIs(t, err, ErrConstraintViolation)
	})

	t.Run("values are escaped", func(t *testing.T) {
		s := facultySchema(t)
		require.NoError(t, s.SetInt("id", 2))
		require.NoError(t, s.SetText("name", "O'Brien\\Lab"))

		q, err := s.InsertQuery()
		require.NoError(t, err)
		assert.Contains(t, q, `VALUES ('2', 'O''Brien\\Lab')`)
	})
}

func TestInsertNewQuery(t *testing.T) {
	t.Run("empty auto increment column is left to the server", func(t *testing.T) {
		s := facultySchema(t)
		require.NoError(t, s.SetText("name", "arts"))

		q, err := s.InsertNewQuery()
		require.NoError(t, err)
		assert.Equal(t, `INSERT INTO "faculty" ("name") VALUES ('arts') ON DUPLICATE KEY UPDATE "name" = VALUES("name");`, q)
	})

	t.Run("filled key is kept", func(t *testing.T) {
		s := facultySchema(t)
		require.NoError(t, s.SetInt("id", 4))
		require.NoError(t, s.SetText("name", "arts"))

		q, err := s.InsertNewQuery()
		require.NoError(t, err)
		assert.Contains(t, q, `("id", "name") VALUES ('4', 'arts')`)
	})

	t.Run("other required columns still fail", func(t *testing.T) {
		s := facultySchema(t)

		q, err := s.InsertNewQuery()
		require.ErrorIs(t, err, ErrConstraintViolation)
		assert.Empty(t, q)

		var e *Error
		require.True(t, errors.As(err, &e))
		assert.Equal(t, "name", e.Column)
	})

	t.Run("non serial key without value fails", func(t *testing.T) {
		s := MustSchema(NewSchema("week_type", []*Column{
			NewIntColumn("id", PrimaryKey),
			NewTextColumn("name", 32, NotNull),
		}))
		require.NoError(t, s.SetText("name", "odd"))

		_, err := s.InsertNewQuery()
		assert.ErrorIs(t, err, ErrConstraintViolation)
	})
}

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, `"faculty"`, QuoteIdentifier("faculty"))
	assert.Equal(t, `"a""b"`, QuoteIdentifier(`a"b`))
	assert.Equal(t, `"trim"`, QuoteIdentifier("  trim "))
}

func TestQuoteString(t *testing.T) {
	tests := map[string]string{
		"plain":     `'plain'`,
		"it's":      `'it''s'`,
		"a\nb":      `'a\nb'`,
		"a\rb":      `'a\rb'`,
		"nul\x00":   `'nul\0'`,
		"ctrl\x1az": `'ctrl\Zz'`,
		`back\`:     `'back\\'`,
	}
	for in, want := range tests {
		assert.Equal(t, want, QuoteString(in), "input %q", in)
	}
	assert.Equal(t, `'-5'`, QuoteValue(IntValue(-5)))
}

package dirscrape_test

import (
	"testing"

	dirscrape "github.com/AnanthHariharan/directory-scraper"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := dirscrape.Errorf(dirscrape.EINVALID, "field %q required", "email")

	assert.Equal(t, dirscrape.EINVALID, dirscrape.ErrorCode(err))
	assert.Equal(t, "field \"email\" required", dirscrape.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, dirscrape.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, dirscrape.ErrorMessage(nil))
}

func TestFieldSchema_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a well-formed schema", func(t *testing.T) {
		t.Parallel()

		schema := dirscrape.FieldSchema{
			{Name: "name", Description: "full name of the person"},
			{Name: "email", Description: "contact email address"},
		}
		assert.NoError(t, schema.Validate())
	})

	t.Run("rejects an empty schema", func(t *testing.T) {
		t.Parallel()

		err := dirscrape.FieldSchema{}.Validate()
		assert.Equal(t, dirscrape.EINVALID, dirscrape.ErrorCode(err))
	})

	t.Run("rejects unnamed fields", func(t *testing.T) {
		t.Parallel()

		err := dirscrape.FieldSchema{{Description: "no name"}}.Validate()
		assert.Equal(t, dirscrape.EINVALID, dirscrape.ErrorCode(err))
	})

	t.Run("rejects duplicate fields", func(t *testing.T) {
		t.Parallel()

		schema := dirscrape.FieldSchema{
			{Name: "name"},
			{Name: "name"},
		}
		err := schema.Validate()
		assert.Equal(t, dirscrape.EINVALID, dirscrape.ErrorCode(err))
	})
}

func TestRecord_MergeMissing(t *testing.T) {
	t.Parallel()

	schema := dirscrape.FieldSchema{
		{Name: "email"},
		{Name: "phone"},
	}

	rec := dirscrape.NewRecord(schema)
	rec["email"] = "a@x.com"

	rec.MergeMissing(map[string]string{
		"email": "other@x.com",
		"phone": "555-1234",
	})

	assert.Equal(t, "a@x.com", rec["email"], "populated fields are never overwritten")
	assert.Equal(t, "555-1234", rec["phone"])
}

func TestRecord_MergeMissing_IgnoresUnknownFields(t *testing.T) {
	t.Parallel()

	rec := dirscrape.NewRecord(dirscrape.FieldSchema{{Name: "name"}})
	rec.MergeMissing(map[string]string{"surprise": "value"})

	assert.Equal(t, dirscrape.Record{"name": ""}, rec)
}

func TestRecord_MissingRatio(t *testing.T) {
	t.Parallel()

	schema := dirscrape.FieldSchema{
		{Name: "name"},
		{Name: "email"},
		{Name: "phone"},
		{Name: "title"},
	}

	rec := dirscrape.NewRecord(schema)
	rec["name"] = "Ada Lovelace"

	assert.InDelta(t, 0.75, rec.MissingRatio(schema), 1e-9)
	assert.Equal(t, []string{"email", "phone", "title"}, rec.Missing(schema).Names())
}

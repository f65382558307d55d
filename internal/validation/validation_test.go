package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name    string
	Website string
}

var recordRules = RuleSet[record]{
	{
		Name: "name",
		Rule: "required",
		Get:  func(r *record) string { return r.Name },
		Set:  func(r *record, v string) { r.Name = v },
	},
	{
		Name: "website",
		Rule: "required,url",
		Get:  func(r *record) string { return r.Website },
		Set:  func(r *record, v string) { r.Website = v },
	},
}

func strPtr(s string) *string {
	return &s
}

func TestValidateAndFill(t *testing.T) {
	type want struct {
		record  record
		invalid []string
	}

	tests := []struct {
		name    string
		initial record
		values  map[string]*string
		want    want
	}{
		{
			name:    "all values applied",
			initial: record{},
			values:  map[string]*string{"name": strPtr("Комус"), "website": strPtr("https://comus.ru")},
			want: want{
				record: record{Name: "Комус", Website: "https://comus.ru"},
			},
		},
		{
			name:    "nil keeps previous value",
			initial: record{Name: "Комус", Website: "https://comus.ru"},
			values:  map[string]*string{"name": nil, "website": strPtr("https://new.com")},
			want: want{
				record: record{Name: "Комус", Website: "https://new.com"},
			},
		},
		{
			name:    "empty value fails required",
			initial: record{Name: "Комус", Website: "https://comus.ru"},
			values:  map[string]*string{"name": strPtr("")},
			want: want{
				record:  record{Name: "", Website: "https://comus.ru"},
				invalid: []string{"name"},
			},
		},
		{
			name:    "whole record is validated",
			initial: record{},
			values:  map[string]*string{"name": strPtr("T")},
			want: want{
				record:  record{Name: "T"},
				invalid: []string{"website"},
			},
		},
		{
			name:    "unknown keys are ignored",
			initial: record{},
			values:  map[string]*string{"role": strPtr("admin")},
			want: want{
				record:  record{},
				invalid: []string{"name", "website"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.initial
			err := recordRules.ValidateAndFill(&r, tt.values)

			assert.Equal(t, tt.want.record, r)

			if len(tt.want.invalid) == 0 {
				require.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Len(t, verr.Messages, len(tt.want.invalid))
			for _, field := range tt.want.invalid {
				assert.True(t, verr.Has(field), "expected message for %s", field)
			}
		})
	}
}

func TestValidationErrorMessages(t *testing.T) {
	err := recordRules.Validate(&record{Name: "x", Website: "not a url"})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"The website field must be a valid URL."}, verr.Messages["website"])
	assert.Equal(t, "validation failed: website: The website field must be a valid URL.", verr.Error())
}

func TestStruct(t *testing.T) {
	type request struct {
		Title string
		URL   string `validate:"required,url"`
	}

	assert.NoError(t, Struct(request{URL: "https://comus.ru"}))

	err := Struct(request{URL: "comus"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"The url field must be a valid URL."}, verr.Messages["url"])

	err = Struct(request{})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"The url field is required."}, verr.Messages["url"])
}

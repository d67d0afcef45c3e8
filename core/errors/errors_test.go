package errors

import (
	stderrors "errors"
	"testing"
)

func TestTypedErrorsUnwrapToSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		want     string
	}{
		{
			name:     "edition not found",
			err:      &EditionNotFoundError{Identifier: "en.nosuch"},
			sentinel: ErrEditionNotFound,
			want:     "edition not found: en.nosuch",
		},
		{
			name:     "ayah by surah coordinate",
			err:      &AyahNotFoundError{Edition: "quran-simple", Surah: 2, Ayah: 999},
			sentinel: ErrAyahNotFound,
			want:     "ayah 2:999 not found in edition quran-simple",
		},
		{
			name:     "ayah by global number",
			err:      &AyahNotFoundError{Edition: "quran-simple", Ayah: 9999},
			sentinel: ErrAyahNotFound,
			want:     "ayah 9999 not found in edition quran-simple",
		},
		{
			name:     "coordinate",
			err:      &CoordinateError{Field: "page", Value: "605", Message: "must be 1..604"},
			sentinel: ErrInvalidCoordinate,
			want:     `invalid page "605": must be 1..604`,
		},
		{
			name:     "narration edition",
			err:      &NarrationEditionError{Identifier: "en.sahih", Type: "translation"},
			sentinel: ErrInvalidNarrationEdition,
			want:     `edition en.sahih has type "translation", narration required`,
		},
		{
			name:     "resource not found",
			err:      &NotFoundError{Resource: "word", ID: "1:1:99"},
			sentinel: ErrNotFound,
			want:     "word not found: 1:1:99",
		},
		{
			name:     "internal",
			err:      &InternalError{Op: "store.Surahs", Err: stderrors.New("connection refused")},
			sentinel: ErrInternal,
			want:     "store.Surahs: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !stderrors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, sentinel) = false; want true", tt.err)
			}
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestInternalPassesThroughTypedErrors(t *testing.T) {
	typed := &AyahNotFoundError{Edition: "quran-simple", Ayah: 7000}
	if got := Internal("store.AyahByNumber", typed); got != typed {
		t.Errorf("Internal() wrapped a typed error; want passthrough")
	}

	plain := stderrors.New("pq: deadlock detected")
	wrapped := Internal("store.Search", plain)
	if !stderrors.Is(wrapped, ErrInternal) {
		t.Errorf("Internal() result is not ErrInternal")
	}
	if stderrors.Is(wrapped, ErrAyahNotFound) {
		t.Errorf("Internal() result unexpectedly matches ErrAyahNotFound")
	}

	if Internal("op", nil) != nil {
		t.Errorf("Internal(nil) != nil")
	}
}

package postgres

import (
	"database/sql"
	"reflect"
	"testing"

	"github.com/quranhub/quranhub/internal/store"
)

func TestIntArray(t *testing.T) {
	tests := []struct {
		in      sql.NullString
		want    []int
		wantErr bool
	}{
		{sql.NullString{}, nil, false},
		{sql.NullString{String: "", Valid: true}, nil, false},
		{sql.NullString{String: "7", Valid: true}, []int{7}, false},
		{sql.NullString{String: "1,2,3", Valid: true}, []int{1, 2, 3}, false},
		{sql.NullString{String: " 1 , 2 ", Valid: true}, []int{1, 2}, false},
		{sql.NullString{String: "1,x", Valid: true}, nil, true},
	}
	for _, tt := range tests {
		got, err := intArray(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("intArray(%q) error = %v; wantErr %v", tt.in.String, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
			t.Errorf("intArray(%q) = %v; want %v", tt.in.String, got, tt.want)
		}
	}
}

func TestSplitKeywords(t *testing.T) {
	got := splitKeywords("mercy\x1fرحمة, رحمه")
	want := []string{"mercy", "رحمة, رحمه"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitKeywords() = %v; want %v", got, want)
	}
}

func TestUnitColumn(t *testing.T) {
	for _, u := range []store.Unit{
		store.UnitPage, store.UnitJuz, store.UnitHizb,
		store.UnitHizbQuarter, store.UnitManzil, store.UnitRuku,
	} {
		if _, ok := unitColumn(u); !ok {
			t.Errorf("unitColumn(%s) not mapped", u)
		}
	}
	if col, ok := unitColumn(store.Unit("ayah; drop table ayah")); ok {
		t.Errorf("unitColumn accepted an unknown unit: %q", col)
	}
}

func TestConfigDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: "5432", User: "u", Password: "p", Database: "quran"}
	if got, want := cfg.DSN(), "postgres://u:p@db:5432/quran"; got != want {
		t.Errorf("DSN() = %q; want %q", got, want)
	}
}

package narration

import (
	"reflect"
	"testing"
)

// fatihaRows models surah 1, where Warsh does not count the basmala as its
// own ayah: Hafs 1+2 cover the material of Warsh 1, and the remaining
// ayahs shift down by one.
var fatihaRows = []Row{
	{Surah: 1, Hafs: []int{1, 2}, Warsh: []int{1}},
	{Surah: 1, Hafs: []int{3}, Warsh: []int{2}},
	{Surah: 1, Hafs: []int{4}, Warsh: []int{3}},
	{Surah: 1, Hafs: []int{5}, Warsh: []int{4}},
	{Surah: 1, Hafs: []int{6}, Warsh: []int{5}},
	{Surah: 1, Hafs: []int{7}, Warsh: []int{6, 7}},
}

func TestMap(t *testing.T) {
	tests := []struct {
		name     string
		rows     []Row
		src, dst Key
		ayah     int
		want     []int
	}{
		{"same reading is identity", fatihaRows, Hafs, Hafs, 2, []int{2}},
		{"join: two hafs ayahs one warsh", fatihaRows, Hafs, Warsh, 1, []int{1}},
		{"join second member", fatihaRows, Hafs, Warsh, 2, []int{1}},
		{"shifted", fatihaRows, Hafs, Warsh, 4, []int{3}},
		{"split: one hafs two warsh", fatihaRows, Hafs, Warsh, 7, []int{6, 7}},
		{"reverse of split", fatihaRows, Warsh, Hafs, 6, []int{7}},
		{"reverse of join", fatihaRows, Warsh, Hafs, 1, []int{1, 2}},
		{"no rows is passthrough", nil, Hafs, Warsh, 5, []int{5}},
		{"ayah not enumerated is passthrough", fatihaRows, Hafs, Warsh, 99, []int{99}},
		{"reading without data is passthrough", fatihaRows, Hafs, Qunbul, 3, []int{3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Map(tt.rows, tt.src, tt.dst, tt.ayah)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Map(%s->%s, %d) = %v; want %v", tt.src, tt.dst, tt.ayah, got, tt.want)
			}
		})
	}
}

func TestMapRoundTrip(t *testing.T) {
	// Every target of a forward mapping must map back to a class
	// containing the origin.
	for ayah := 1; ayah <= 7; ayah++ {
		for _, target := range Map(fatihaRows, Hafs, Warsh, ayah) {
			back := Map(fatihaRows, Warsh, Hafs, target)
			if !contains(back, ayah) {
				t.Errorf("round trip broken: hafs %d -> warsh %d -> hafs %v", ayah, target, back)
			}
		}
	}
}

func TestFromHafs(t *testing.T) {
	hafs, target := FromHafs(fatihaRows, Warsh, 2)
	if !reflect.DeepEqual(hafs, []int{1, 2}) || !reflect.DeepEqual(target, []int{1}) {
		t.Errorf("FromHafs(2) = %v, %v; want [1 2], [1]", hafs, target)
	}

	hafs, target = FromHafs(fatihaRows, Warsh, 7)
	if !reflect.DeepEqual(hafs, []int{7}) || !reflect.DeepEqual(target, []int{6, 7}) {
		t.Errorf("FromHafs(7) = %v, %v; want [7], [6 7]", hafs, target)
	}

	hafs, target = FromHafs(nil, Warsh, 3)
	if !reflect.DeepEqual(hafs, []int{3}) || !reflect.DeepEqual(target, []int{3}) {
		t.Errorf("FromHafs with no rows = %v, %v; want [3], [3]", hafs, target)
	}
}

func TestKeyForIdentifier(t *testing.T) {
	tests := []struct {
		id   string
		want Key
	}{
		{"quran-simple", Hafs},
		{"quran-uthmani-quran-academy", Hafs},
		{"quran-warsh", Warsh},
		{"quran-qaloon", Qaloon},
		{"ar.abdullahbasfar.hafs", Hafs},
		{"ar.sahlyahya.warsh", Warsh},
		{"quran-shuba", Shuba},
		{"quran-albazzi", AlBazzi},
		{"quran-qunbul", Qunbul},
		{"quran-alsusi", AlSusi},
		{"quran-aldouri", AlDouri},
		{"en.sahih", Hafs},
		{"", Hafs},
	}
	for _, tt := range tests {
		if got := KeyForIdentifier(tt.id); got != tt.want {
			t.Errorf("KeyForIdentifier(%q) = %s; want %s", tt.id, got, tt.want)
		}
	}
}

func TestRowList(t *testing.T) {
	row := Row{Surah: 9, Hafs: []int{1}, AlDouri: []int{2}}
	if got := row.List(Hafs); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("List(Hafs) = %v; want [1]", got)
	}
	if got := row.List(AlDouri); !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("List(AlDouri) = %v; want [2]", got)
	}
	if got := row.List(Key("nope")); got != nil {
		t.Errorf("List(unknown) = %v; want nil", got)
	}
}

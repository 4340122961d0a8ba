package reason

import (
	"testing"

	"github.com/abhisek/jalur/internal/record"
)

func TestStandardClassify(t *testing.T) {
	tests := []struct {
		text string
		want record.Reason
	}{
		{"keluar karena biaya", record.ReasonEconomic},
		{"KELUAR KARENA BIAYA", record.ReasonEconomic},
		{"tidak ada uang", record.ReasonEconomic},
		{"cost of uniforms", record.ReasonEconomic},
		{"orang tua pindah ke kota", record.ReasonParentRelocation},
		{"family relocated", record.ReasonParentRelocation},
		{"malas sekolah", record.ReasonLowInterest},
		{"bored", record.ReasonLowInterest},
		{"membantu bekerja di sawah", record.ReasonEmployment},
		{"sakit berkepanjangan", record.ReasonHealth},
		{"pergaulan bebas", record.ReasonBadCompanionship},
		{"drugs", record.ReasonBadCompanionship},
		{"jarak rumah jauh", record.ReasonSchoolDistance},
		{"no transport", record.ReasonSchoolDistance},
		{"ijazah ditahan", record.ReasonOther},
		{"menikah", record.ReasonOther},
		{"", record.ReasonOther},
	}

	table := Standard()
	for _, tt := range tests {
		if got := table.Classify(tt.text); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestExtendedClassifiesArrears(t *testing.T) {
	table := Extended()
	for _, text := range []string{"ijazah ditahan sekolah", "tunggakan SPP", "certificate withheld", "fee arrears"} {
		if got := table.Classify(text); got != record.ReasonTuitionArrears {
			t.Errorf("Classify(%q) = %q, want %q", text, got, record.ReasonTuitionArrears)
		}
	}
}

func TestClassifyFirstEntryWins(t *testing.T) {
	// Economic precedes school-distance and tuition-arrears.
	table := Extended()
	if got := table.Classify("biaya transport mahal"); got != record.ReasonEconomic {
		t.Errorf("got %q, want %q", got, record.ReasonEconomic)
	}
	if got := table.Classify("tunggakan karena tidak ada uang"); got != record.ReasonEconomic {
		t.Errorf("got %q, want %q", got, record.ReasonEconomic)
	}
}

func TestClassifyIgnoresAccents(t *testing.T) {
	table := &Table{Entries: []Entry{{Category: record.ReasonHealth, Keywords: []string{"sante"}}}}
	if got := table.Classify("Problème de SANTÉ"); got != record.ReasonHealth {
		t.Errorf("got %q, want %q", got, record.ReasonHealth)
	}
}

func TestCategoriesOrder(t *testing.T) {
	cats := Standard().Categories()
	if cats[0] != record.ReasonEconomic {
		t.Errorf("first category = %q, want economic", cats[0])
	}
	if cats[len(cats)-1] != record.ReasonOther {
		t.Errorf("last category = %q, want other", cats[len(cats)-1])
	}
	for _, c := range cats {
		if c == record.ReasonTuitionArrears {
			t.Error("standard table must not produce tuition-arrears")
		}
	}
}

func TestForProfile(t *testing.T) {
	if ForProfile("standard").Name != "standard" {
		t.Error("standard profile mismatch")
	}
	if ForProfile("extended").Name != "extended" {
		t.Error("extended profile mismatch")
	}
	if ForProfile("nope") != nil {
		t.Error("unknown profile should be nil")
	}
}

func TestParseTable(t *testing.T) {
	data := []byte(`
name: district-a
entries:
  - category: employment
    keywords: [merantau, kerja]
  - category: economic
    keywords: [biaya]
`)
	table, err := ParseTable(data)
	if err != nil {
		t.Fatalf("ParseTable: %v", err)
	}
	if table.Name != "district-a" {
		t.Errorf("name = %q", table.Name)
	}
	if got := table.Classify("merantau dan biaya"); got != record.ReasonEmployment {
		t.Errorf("got %q, want employment (first entry wins)", got)
	}
}

func TestParseTableRejectsUnknownCategory(t *testing.T) {
	data := []byte(`
entries:
  - category: weather
    keywords: [hujan]
`)
	if _, err := ParseTable(data); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestParseTableRejectsEmptyKeywords(t *testing.T) {
	data := []byte(`
entries:
  - category: economic
    keywords: []
`)
	if _, err := ParseTable(data); err == nil {
		t.Fatal("expected error for empty keyword list")
	}
}

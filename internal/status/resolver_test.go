package status

import (
	"testing"

	"github.com/abhisek/jalur/internal/record"
)

func TestResolveExplicitSynonyms(t *testing.T) {
	tests := []struct {
		in   string
		want record.Status
	}{
		{"drop out", record.StatusDropped},
		{"berhenti", record.StatusDropped},
		{"putus sekolah", record.StatusDropped},
		{"  Putus  Sekolah ", record.StatusDropped},
		{"PUTUS", record.StatusDropped},
		{"quit", record.StatusDropped},
		{"dropped out", record.StatusDropped},
		{"aktif", record.StatusActive},
		{"still in school", record.StatusActive},
		{"Lulus", record.StatusGraduated},
		{"graduated", record.StatusGraduated},
		{"pindahan", record.StatusUnknown},
	}

	r := NewResolver()
	for _, tt := range tests {
		got, _ := r.Resolve(tt.in, true, "")
		if got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveUnknownKeepsRawText(t *testing.T) {
	r := NewResolver()
	got, raw := r.Resolve("  Cuti Panjang ", true, "")
	if got != record.StatusUnknown {
		t.Fatalf("got %q, want unknown", got)
	}
	if raw != "cuti panjang" {
		t.Errorf("raw = %q, want %q", raw, "cuti panjang")
	}
}

func TestResolveIgnoresReasonWhenExplicit(t *testing.T) {
	r := NewResolver()
	got, _ := r.Resolve("aktif", true, "putus karena biaya")
	if got != record.StatusActive {
		t.Errorf("got %q, want active", got)
	}
}

func TestInferFromReason(t *testing.T) {
	tests := []struct {
		reason string
		want   record.Status
	}{
		{"", record.StatusActive},
		{"nan", record.StatusActive},
		{"sudah lulus sd", record.StatusGraduated},
		{"graduated 2022", record.StatusGraduated},
		{"drop karena biaya", record.StatusDropped},
		{"family problem", record.StatusDropped},
		{"putus sekolah", record.StatusDropped},
		{"ada masalah keluarga", record.StatusDropped},
		{"pindah rumah", record.StatusActive},
	}

	r := NewResolver()
	for _, tt := range tests {
		got, raw := r.Resolve("", false, tt.reason)
		if got != tt.want {
			t.Errorf("infer(%q) = %q, want %q", tt.reason, got, tt.want)
		}
		if raw != "" {
			t.Errorf("infer(%q) raw = %q, want empty", tt.reason, raw)
		}
	}
}

func TestInferGraduationBeforeDropout(t *testing.T) {
	// Both hints present: graduation is checked first.
	if got := Infer("lulus lalu putus"); got != record.StatusGraduated {
		t.Errorf("got %q, want graduated", got)
	}
}

func TestParseSynonyms(t *testing.T) {
	syn, err := ParseSynonyms([]byte("Cuti: active\nMENIKAH: dropped\n"))
	if err != nil {
		t.Fatalf("ParseSynonyms: %v", err)
	}
	r := &Resolver{Synonyms: syn}
	if got, _ := r.Resolve("menikah", true, ""); got != record.StatusDropped {
		t.Errorf("got %q, want dropped", got)
	}
	if got, _ := r.Resolve("cuti", true, ""); got != record.StatusActive {
		t.Errorf("got %q, want active", got)
	}
}

func TestParseSynonymsRejectsBadStatus(t *testing.T) {
	if _, err := ParseSynonyms([]byte("cuti: vacation\n")); err == nil {
		t.Fatal("expected error for invalid status value")
	}
}

package normalize

import (
	"sync"
	"testing"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Sakít   Parah ", "sakit parah"},
		{"EKONOMI", "ekonomi"},
		{"Pergaulan\tbebas", "pergaulan bebas"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Fold(tt.in); got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"BUDI SANTOSO", "Budi Santoso"},
		{"siti   aminah", "Siti Aminah"},
		{"Ni Made dewi", "Ni Made dewi"},
		{"  ", ""},
	}
	for _, tt := range tests {
		if got := Name(tt.in); got != tt.want {
			t.Errorf("Name(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"Rp 1.250.000", 1250000},
		{"50,000", 50000},
		{"750000", 750000},
		{"-", 0},
		{"", 0},
		{"belum bayar", 0},
		{"-200000", 200000},
	}
	for _, tt := range tests {
		if got := Amount(tt.in); got != tt.want {
			t.Errorf("Amount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFoldAndNameConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				if got := Fold("  Sakít   Parah "); got != "sakit parah" {
					errs <- "Fold: " + got
					return
				}
				if got := Name("JOSÉ ÁLVAREZ"); got != "José Álvarez" {
					errs <- "Name: " + got
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}

package contracts

import "testing"

func TestIsValidSymbol(t *testing.T) {
	tests := []struct {
		symbol string
		want   bool
	}{
		{"AAPL", true},
		{"NYSE:AAPL", true},
		{"BRK.A", true},
		{"NASDAQ:PPC", true},
		{"", false},
		{"TOOLONGSTOCKSYMBOL", false},
		{"AA PL", false},
		{"AAPL$", false},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			if got := IsValidSymbol(tt.symbol); got != tt.want {
				t.Errorf("IsValidSymbol(%q) = %v, want %v", tt.symbol, got, tt.want)
			}
		})
	}
}

func TestValidateEntry(t *testing.T) {
	negative := -0.5

	tests := []struct {
		name    string
		entry   ScoreEntry
		wantErr bool
	}{
		{
			name:  "valid entry",
			entry: ScoreEntry{Symbol: "NYSE:SEM", Score: 1, TargetPrice: 22.63},
		},
		{
			name:    "score above one",
			entry:   ScoreEntry{Symbol: "NYSE:SEM", Score: 1.5, TargetPrice: 22.63},
			wantErr: true,
		},
		{
			name:    "missing target",
			entry:   ScoreEntry{Symbol: "NYSE:SEM", Score: 0.9},
			wantErr: true,
		},
		{
			name:    "bad symbol",
			entry:   ScoreEntry{Symbol: "NOT A SYMBOL", Score: 0.9, TargetPrice: 10},
			wantErr: true,
		},
		{
			name:    "negative dividend",
			entry:   ScoreEntry{Symbol: "PPC", Score: 0.9, TargetPrice: 10, DividendPerShare: &negative},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntry(tt.entry)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEntry() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateEntries_Duplicate(t *testing.T) {
	entries := []ScoreEntry{
		{Symbol: "NYSE:SEM", Score: 1, TargetPrice: 22.63},
		{Symbol: "NYSE:SEM", Score: 0.8, TargetPrice: 21},
	}

	if err := ValidateEntries(entries); err == nil {
		t.Error("expected duplicate symbol error")
	}
}

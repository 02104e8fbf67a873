package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestTableFormatter_Slice(t *testing.T) {
	rows := []sampleRow{
		{ID: "1", Name: "Masai Mara", Price: 1500, Secret: "x", Notes: "popular"},
		{ID: "2", Name: "Amboseli", Price: 980.5},
	}

	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, rows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	header := strings.Fields(lines[0])
	if strings.Join(header, " ") != "ID NAME PRICE" {
		t.Errorf("header = %v, want [ID NAME PRICE]", header)
	}
	if !strings.Contains(lines[2], "980.50") {
		t.Errorf("price not formatted: %q", lines[2])
	}
	if strings.Contains(buf.String(), "popular") {
		t.Error("wide column rendered without wide mode")
	}
}

func TestTableFormatter_Wide(t *testing.T) {
	var buf bytes.Buffer
	rows := []sampleRow{{ID: "1", Name: "Mara", Notes: "popular"}}
	if err := (&TableFormatter{Wide: true}).Format(&buf, rows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(buf.String(), "NOTES") || !strings.Contains(buf.String(), "popular") {
		t.Errorf("wide column missing:\n%s", buf.String())
	}
}

func TestTableFormatter_EmptySlice(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, []sampleRow{}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("empty slice rendered %q", buf.String())
	}
}

func TestTableFormatter_Struct(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, sampleRow{ID: "3", Name: "Tsavo"}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "FIELD") {
		t.Errorf("struct table should start with FIELD header:\n%s", out)
	}
	if !strings.Contains(out, "Tsavo") {
		t.Errorf("value missing:\n%s", out)
	}
}

func TestTableFormatter_NoHeaders(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{NoHeaders: true}
	if err := f.Format(&buf, []sampleRow{{ID: "1", Name: "Mara"}}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if strings.Contains(buf.String(), "NAME") {
		t.Errorf("headers rendered with NoHeaders:\n%s", buf.String())
	}
}

func TestTableFormatter_ThemedHeader(t *testing.T) {
	SetColorEnabled(false)
	defer SetColorEnabled(false)

	var buf bytes.Buffer
	f := &TableFormatter{Theme: DarkTheme()}
	if err := f.Format(&buf, []sampleRow{{ID: "1", Name: "Mara"}}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), "ID") {
		t.Errorf("header line changed with colors disabled:\n%q", buf.String())
	}
}

func TestTable_Render(t *testing.T) {
	table := &Table{}
	table.SetHeaders("METRIC", "VALUE")
	table.AddRow("Total bookings", "42")

	var buf bytes.Buffer
	if err := table.Render(&buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Total bookings  42") {
		t.Errorf("unexpected render:\n%s", buf.String())
	}
}

func TestFormatValue_StringSlice(t *testing.T) {
	type guide struct {
		Languages []string `json:"languages"`
	}
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, []guide{{Languages: []string{"English", "Swahili"}}}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(buf.String(), "English, Swahili") {
		t.Errorf("string slice not joined:\n%s", buf.String())
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"plateNumber": "plate_Number",
		"id":          "id",
		"TotalSpent":  "Total_Spent",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTheme_ApplyDarkMode(t *testing.T) {
	defer ApplyDarkMode(false)

	ApplyDarkMode(true)
	if CurrentTheme().Name != "dark" {
		t.Errorf("theme = %s, want dark", CurrentTheme().Name)
	}
	ApplyDarkMode(false)
	if CurrentTheme().Name != "light" {
		t.Errorf("theme = %s, want light", CurrentTheme().Name)
	}
}

func TestTheme_StatusPlain(t *testing.T) {
	SetColorEnabled(false)
	if got := LightTheme().Status("confirmed"); got != "confirmed" {
		t.Errorf("Status() = %q with colors disabled", got)
	}
}

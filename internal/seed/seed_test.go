package seed

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "patients.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeSeedFile(t, `[
		{"FIRSTNAME": "JOHN", "LASTNAME": "DOE", "ATHENA_PATIENT_ID": "A1001"},
		{"patientdetails": {"firstname": "Jane"}, "patientdemographics": [{"city": "Austin", "lastupdated": "2023-01-01T00:00:00Z"}]}
	]`)

	docs, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0]["FIRSTNAME"] != "JOHN" {
		t.Errorf("docs[0][FIRSTNAME] = %v", docs[0]["FIRSTNAME"])
	}
	if _, ok := docs[1]["patientdetails"]; !ok {
		t.Error("expected patientdetails key in second document")
	}
}

func TestLoad_EmptyArray(t *testing.T) {
	docs, err := Load(writeSeedFile(t, `[]`))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected 0 documents, got %d", len(docs))
	}
}

func TestLoad_NotAnArray(t *testing.T) {
	if _, err := Load(writeSeedFile(t, `{"FIRSTNAME": "JOHN"}`)); err == nil {
		t.Error("expected error for non-array seed file")
	}
}

func TestLoad_ElementNotAnObject(t *testing.T) {
	if _, err := Load(writeSeedFile(t, `[{"a": 1}, "not an object"]`)); err == nil {
		t.Error("expected error for non-object element")
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	if _, err := Load(writeSeedFile(t, `[{"a": 1`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

package viewer

import (
	"testing"

	"github.com/ehiview/ehiview/internal/record"
)

func TestToggle(t *testing.T) {
	var s SortState

	s = s.Toggle("lastname")
	if s.Column != "lastname" || s.Direction != Ascending {
		t.Fatalf("first click: %+v, want lastname asc", s)
	}
	s = s.Toggle("lastname")
	if s.Direction != Descending {
		t.Fatalf("second click should toggle to desc: %+v", s)
	}
	s = s.Toggle("lastname")
	if s.Direction != Ascending {
		t.Fatalf("third click should toggle back to asc: %+v", s)
	}
	s = s.Toggle("lastname")
	s = s.Toggle("dob")
	if s.Column != "dob" || s.Direction != Ascending {
		t.Fatalf("switching columns must reset to asc: %+v", s)
	}
}

func TestSortDottedPathColumn(t *testing.T) {
	records := record.NormalizeAll([]map[string]any{
		{"athenapatientid": "N1", "patientdetails": map[string]any{"emergencycontact": map[string]any{"name": "Walsh"}}},
		{"athenapatientid": "N2", "patientdetails": map[string]any{"emergencycontact": map[string]any{"name": "brown"}}},
		{"athenapatientid": "N3", "lastname": "Adams"},
	})

	got := Sort(records, SortState{Column: "patientdetails.emergencycontact.name", Direction: Ascending})
	if ids(got) != "N2,N1,N3" {
		t.Errorf("dotted column asc = %s, want N2,N1,N3 (record without the path last)", ids(got))
	}
}

func TestSortStringsCaseInsensitive(t *testing.T) {
	records := record.NormalizeAll([]map[string]any{
		{"ATHENA_PATIENT_ID": "A1", "LASTNAME": "smith"},
		{"ATHENA_PATIENT_ID": "A2", "LASTNAME": "JONES"},
		{"ATHENA_PATIENT_ID": "A3", "LASTNAME": "Adams"},
	})

	got := Sort(records, SortState{Column: "lastname", Direction: Ascending})
	if ids(got) != "A3,A2,A1" {
		t.Errorf("asc = %s, want A3,A2,A1", ids(got))
	}
	got = Sort(records, SortState{Column: "lastname", Direction: Descending})
	if ids(got) != "A1,A2,A3" {
		t.Errorf("desc = %s, want A1,A2,A3", ids(got))
	}
}

func TestSortDatesByTimestampNotText(t *testing.T) {
	// Text order of these DOB strings differs from date order.
	records := record.NormalizeAll([]map[string]any{
		{"ATHENA_PATIENT_ID": "A1", "DOB": "02/01/2020"}, // Feb 1 2020
		{"ATHENA_PATIENT_ID": "A2", "DOB": "01/15/2021"}, // Jan 15 2021
		{"ATHENA_PATIENT_ID": "A3", "DOB": "12/31/2019"}, // Dec 31 2019
	})

	got := Sort(records, SortState{Column: "dob", Direction: Ascending})
	if ids(got) != "A3,A1,A2" {
		t.Errorf("date asc = %s, want A3,A1,A2", ids(got))
	}
}

func TestSortNumbersNumerically(t *testing.T) {
	records := record.NormalizeAll([]map[string]any{
		{"ATHENA_PATIENT_ID": "A1", "VISITCOUNT": float64(100)},
		{"ATHENA_PATIENT_ID": "A2", "VISITCOUNT": float64(9)},
		{"ATHENA_PATIENT_ID": "A3", "VISITCOUNT": float64(25)},
	})

	got := Sort(records, SortState{Column: "visitcount", Direction: Ascending})
	if ids(got) != "A2,A3,A1" {
		t.Errorf("numeric asc = %s, want A2,A3,A1 (not text order)", ids(got))
	}
}

func TestSortStableTieBreak(t *testing.T) {
	records := record.NormalizeAll([]map[string]any{
		{"ATHENA_PATIENT_ID": "A1", "LASTNAME": "Smith", "FIRSTNAME": "Zed"},
		{"ATHENA_PATIENT_ID": "A2", "LASTNAME": "Smith", "FIRSTNAME": "Amy"},
		{"ATHENA_PATIENT_ID": "A3", "LASTNAME": "Adams"},
		{"ATHENA_PATIENT_ID": "A4", "LASTNAME": "Smith", "FIRSTNAME": "Mia"},
	})

	got := Sort(records, SortState{Column: "lastname", Direction: Ascending})
	// Equal keys keep their unsorted relative order.
	if ids(got) != "A3,A1,A2,A4" {
		t.Errorf("stable sort = %s, want A3,A1,A2,A4", ids(got))
	}
}

func TestSortMissingFieldGoesLast(t *testing.T) {
	records := record.NormalizeAll([]map[string]any{
		{"ATHENA_PATIENT_ID": "A1"},
		{"ATHENA_PATIENT_ID": "A2", "LASTNAME": "Brown"},
		{"ATHENA_PATIENT_ID": "A3", "LASTNAME": "Able"},
	})

	got := Sort(records, SortState{Column: "lastname", Direction: Ascending})
	if ids(got) != "A3,A2,A1" {
		t.Errorf("asc with absent = %s, want A3,A2,A1", ids(got))
	}
	got = Sort(records, SortState{Column: "lastname", Direction: Descending})
	if ids(got) != "A2,A3,A1" {
		t.Errorf("desc keeps absent last = %s, want A2,A3,A1", ids(got))
	}
}

func TestSortNoColumnKeepsInsertionOrder(t *testing.T) {
	records := testRecords()
	got := Sort(records, SortState{})
	if ids(got) != ids(records) {
		t.Errorf("no-column sort changed order: %s", ids(got))
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	records := record.NormalizeAll([]map[string]any{
		{"ATHENA_PATIENT_ID": "A2", "LASTNAME": "Zulu"},
		{"ATHENA_PATIENT_ID": "A1", "LASTNAME": "Alpha"},
	})
	before := ids(records)
	Sort(records, SortState{Column: "lastname"})
	if ids(records) != before {
		t.Error("Sort mutated its input slice")
	}
}

func TestParseDirection(t *testing.T) {
	if ParseDirection("desc") != Descending || ParseDirection("DESC") != Descending {
		t.Error("desc should parse descending")
	}
	if ParseDirection("asc") != Ascending || ParseDirection("") != Ascending {
		t.Error("anything else should default ascending")
	}
}

package viewer

import (
	"strings"

	"github.com/ehiview/ehiview/internal/record"
)

// DetailField is one labeled row of the detail view.
type DetailField struct {
	Field string `json:"field"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// DetailGroup is one semantic section of the detail view.
type DetailGroup struct {
	Name   string        `json:"name"`
	Fields []DetailField `json:"fields"`
}

// groupDef fixes the section order and the fields each section claims.
type groupDef struct {
	name   string
	fields []string
}

var detailGroups = []groupDef{
	{"Personal", []string{
		"firstname", "middlename", "lastname", "preferredname", "dob",
		"sex", "ssn", "maritalstatus", "race", "language",
	}},
	{"Medical & Administrative", []string{
		"athenapatientid", "enterpriseid", "patientid", "status",
		"departmentid", "primarydepartmentid", "primaryproviderid",
		"registrationdate", "lastappointment", "firstappointment",
	}},
	{"Contact Preferences", []string{
		"address", "address1", "address2", "city", "state", "zip",
		"countrycode", "mobilephone", "homephone", "workphone", "email",
		"contactname", "contactmobilephone", "contactrelationship",
		"consenttocall", "consenttotext",
	}},
	{"Guarantor", []string{
		"guarantorfirstname", "guarantormiddlename", "guarantorlastname",
		"guarantordob", "guarantorssn", "guarantoraddress1",
		"guarantoraddress2", "guarantorcity", "guarantorstate",
		"guarantorzip", "guarantorcountrycode", "guarantorphone",
		"guarantoremail", "guarantorrelationshiptopatient",
		"guarantoremployerid",
	}},
}

// fieldLabels humanizes the canonical names that have a conventional
// label; anything else is title-cased from its raw name.
var fieldLabels = map[string]string{
	"firstname":                      "First Name",
	"middlename":                     "Middle Name",
	"lastname":                       "Last Name",
	"preferredname":                  "Preferred Name",
	"dob":                            "Date of Birth",
	"sex":                            "Sex",
	"ssn":                            "SSN",
	"maritalstatus":                  "Marital Status",
	"race":                           "Race",
	"language":                       "Language",
	"athenapatientid":                "Patient ID",
	"enterpriseid":                   "Enterprise ID",
	"patientid":                      "Patient ID",
	"status":                         "Status",
	"departmentid":                   "Department ID",
	"primarydepartmentid":            "Primary Department ID",
	"primaryproviderid":              "Primary Provider ID",
	"registrationdate":               "Registration Date",
	"lastappointment":                "Last Appointment",
	"firstappointment":               "First Appointment",
	"address":                        "Address",
	"address1":                       "Address Line 1",
	"address2":                       "Address Line 2",
	"city":                           "City",
	"state":                          "State",
	"zip":                            "ZIP",
	"countrycode":                    "Country",
	"mobilephone":                    "Mobile Phone",
	"homephone":                      "Home Phone",
	"workphone":                      "Work Phone",
	"email":                          "Email",
	"contactname":                    "Contact Name",
	"contactmobilephone":             "Contact Mobile Phone",
	"contactrelationship":            "Contact Relationship",
	"consenttocall":                  "Consent to Call",
	"consenttotext":                  "Consent to Text",
	"guarantorfirstname":             "Guarantor First Name",
	"guarantormiddlename":            "Guarantor Middle Name",
	"guarantorlastname":              "Guarantor Last Name",
	"guarantordob":                   "Guarantor Date of Birth",
	"guarantorssn":                   "Guarantor SSN",
	"guarantoraddress1":              "Guarantor Address Line 1",
	"guarantoraddress2":              "Guarantor Address Line 2",
	"guarantorcity":                  "Guarantor City",
	"guarantorstate":                 "Guarantor State",
	"guarantorzip":                   "Guarantor ZIP",
	"guarantorcountrycode":           "Guarantor Country",
	"guarantorphone":                 "Guarantor Phone",
	"guarantoremail":                 "Guarantor Email",
	"guarantorrelationshiptopatient": "Guarantor Relationship",
	"guarantoremployerid":            "Guarantor Employer ID",
	"lastupdated":                    "Last Updated",
	"patientdemographics":            "Demographics History",
}

// Project expands one record into the ordered, grouped field-by-field
// detail view. Fields absent on the record's shape variant are omitted
// from their group, never emitted blank; a group with nothing present
// is dropped entirely. Fields no group claims land in a trailing
// "Other" group in the record's own field order.
func Project(r *record.Record) []DetailGroup {
	if r == nil {
		return nil
	}

	claimed := make(map[string]bool)
	var groups []DetailGroup

	for _, def := range detailGroups {
		var fields []DetailField
		for _, name := range def.fields {
			claimed[name] = true
			v, ok := r.Get(name)
			if !ok {
				continue
			}
			fields = append(fields, DetailField{
				Field: name,
				Label: Label(name),
				Value: v.Display(),
			})
		}
		if len(fields) > 0 {
			groups = append(groups, DetailGroup{Name: def.name, Fields: fields})
		}
	}

	var other []DetailField
	for _, name := range r.Fields() {
		if claimed[name] {
			continue
		}
		v, ok := r.Get(name)
		if !ok {
			continue
		}
		other = append(other, DetailField{
			Field: name,
			Label: Label(name),
			Value: v.Display(),
		})
	}
	if len(other) > 0 {
		groups = append(groups, DetailGroup{Name: "Other", Fields: other})
	}

	return groups
}

// Label returns the human label for a canonical field name.
func Label(name string) string {
	if l, ok := fieldLabels[record.CanonicalField(name)]; ok {
		return l
	}
	return titleCase(name)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

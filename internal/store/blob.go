package store

import (
	"encoding/json"
	"strings"

	"github.com/crelab/dircrawl/internal/normalize"
	"github.com/crelab/dircrawl/pkg/records"
)

// experienceBlobMax caps the experience text embedded into the vector blob;
// beyond this the embedding stops improving and the token cost keeps rising.
const experienceBlobMax = 6000

// PersonID derives a stable vector ID from the display name, falling back
// to the URL when the name never resolved.
func PersonID(rec *records.PersonRecord) string {
	name := rec.Name()
	if name == "" || strings.Contains(name, records.Unreachable) {
		return normalize.Slug(rec.URL)
	}
	return normalize.Slug(name)
}

// PersonBlob is the text that gets embedded for a person record.
func PersonBlob(rec *records.PersonRecord) string {
	var b strings.Builder
	b.WriteString("NAME: " + rec.Name() + "\n")
	b.WriteString("TITLE: " + rec.Title + "\n")
	b.WriteString("LOCATION: " + strings.TrimSpace(strings.Trim(rec.City+", "+rec.State, ", ")) + "\n")

	exp := rec.Experience
	if len(exp) > experienceBlobMax {
		exp = exp[:experienceBlobMax]
	}
	b.WriteString("EXPERIENCE: " + exp)
	return b.String()
}

// PersonMetadata is the queryable payload stored next to the vector.
func PersonMetadata(rec *records.PersonRecord) map[string]interface{} {
	return map[string]interface{}{
		"type":         NamespacePerson,
		"url":          rec.URL,
		"name":         rec.Name(),
		"title":        rec.Title,
		"email":        rec.Email,
		"phone":        rec.Phone(),
		"city":         rec.City,
		"state":        rec.State,
		"vcard":        rec.VCardURL,
		"listings_url": rec.ListingsURL,
	}
}

// PropertyID derives a stable vector ID for a property record.
func PropertyID(rec *records.PropertyRecord) string {
	if rec.Name == "" || rec.Name == records.Unreachable {
		return normalize.Slug(rec.URL)
	}
	return normalize.Slug(rec.Name)
}

// PropertyBlob is the text that gets embedded for a property record.
func PropertyBlob(rec *records.PropertyRecord) string {
	var b strings.Builder
	b.WriteString("PROPERTY: " + rec.Name + "\n")
	b.WriteString("ADDRESS: " + rec.Address + "\n")
	b.WriteString("DESCRIPTION: " + rec.Description)

	if len(rec.Brokers) > 0 {
		names := make([]string, 0, len(rec.Brokers))
		for _, br := range rec.Brokers {
			names = append(names, br.Name)
		}
		b.WriteString("\nAGENTS: " + strings.Join(names, ", "))
	}
	return b.String()
}

// PropertyMetadata is the queryable payload stored next to the vector.
// Brokers are carried as a JSON string because the index only takes flat
// values.
func PropertyMetadata(rec *records.PropertyRecord) map[string]interface{} {
	md := map[string]interface{}{
		"type":         NamespaceProperty,
		"url":          rec.URL,
		"name":         rec.Name,
		"address":      rec.Address,
		"sqft":         rec.SquareFootage,
		"brochure_url": rec.BrochureURL,
	}
	if len(rec.Brokers) > 0 {
		if raw, err := json.Marshal(rec.Brokers); err == nil {
			md["brokers_json"] = string(raw)
		}
	}
	return md
}

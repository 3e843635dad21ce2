package certs

import "time"

// DateFormat is the calendar date layout accepted by the forms and used for display.
const DateFormat = "2006-01-02"

// Certificate is a bookkeeping record for a certificate, as persisted in the
// certificados collection. Digest is derived once at creation from the submitted
// form text and is not touched by later edits.
type Certificate struct {
	ID         string    `json:"id"`
	Company    string    `json:"company"`
	Domain     string    `json:"domain"`
	IssueDate  time.Time `json:"issue_date"`
	ExpiryDate time.Time `json:"expiry_date"`
	Issuer     string    `json:"issuer"`
	Algorithm  Algorithm `json:"algorithm"`
	Digest     string    `json:"encrypted_data"`
}

// View annotates a certificate with its transient expiry flag, computed at
// listing time and never persisted.
type View struct {
	Certificate
	Expired bool `json:"expired"`
}

// Expired reports whether the certificate's expiry date is strictly before now.
// A certificate expiring exactly at now is not yet expired.
func (c Certificate) Expired(now time.Time) bool {
	return c.ExpiryDate.Before(now)
}

// AnnotateAll computes the expiry flag for each certificate against a single
// point in time.
func AnnotateAll(certificates []Certificate, now time.Time) []View {
	views := make([]View, 0, len(certificates))
	for _, certificate := range certificates {
		views = append(views, View{Certificate: certificate, Expired: certificate.Expired(now)})
	}
	return views
}

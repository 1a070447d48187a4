// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

/*
Package lead serves the contact-submission dataset moderated from the lead
dashboard: listing with status counts, enabling or disabling a lead, deleting
it, and composing the welcome mail sent to new leads.
*/
package lead

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/aanchalalytcs/showcase/internal/core/record"
	"github.com/aanchalalytcs/showcase/internal/platform/sheets"
)

// # Remote Store

// Store is the remote leads deployment.
type Store interface {
	Leads(ctx context.Context) ([]record.Lead, error)
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id, status string) error
}

// SheetStore adapts a [sheets.Client] to [Store].
type SheetStore struct {
	*sheets.Client
}

// NewSheetStore wraps client.
func NewSheetStore(client *sheets.Client) *SheetStore {
	return &SheetStore{Client: client}
}

// Leads lists and decodes every lead row.
func (store *SheetStore) Leads(ctx context.Context) ([]record.Lead, error) {
	return sheets.Fetch(ctx, store.Client, record.DecodeLeads)
}

// # Welcome Mail

// Brand identifies the business in welcome mails.
type Brand struct {
	Company string
	Owner   string
	Email   string
	Phone   string
	Address string
	Website string
}

// titleCaser upper-cases the first letter of each word and leaves the rest alone.
var titleCaser = cases.Title(language.Und, cases.NoLower)

// DisplayName title-cases a lead name for the mail greeting.
func DisplayName(name string) string {
	return titleCaser.String(strings.TrimSpace(name))
}

// WelcomeSubject returns the subject line of the welcome mail.
func (b Brand) WelcomeSubject() string {
	return fmt.Sprintf("Welcome to %s!", b.Company)
}

// WelcomeBody returns the plain-text welcome mail addressed to name.
func (b Brand) WelcomeBody(name string) string {
	var body strings.Builder
	fmt.Fprintf(&body, "Hi %s,\n\n", DisplayName(name))
	fmt.Fprintf(&body, "Welcome to %s! My name is %s, the owner of %s.\n\n", b.Company, b.Owner, b.Company)
	fmt.Fprintf(&body, "Explore our website: %s\n\n", b.Website)
	fmt.Fprintf(&body, "Company Details:\nEmail: %s\nPhone: %s\nAddress: %s\n\n", b.Email, b.Phone, b.Address)
	body.WriteString("Looking forward to collaborating with you!\n\n")
	fmt.Fprintf(&body, "Best Regards,\n%s\n%s", b.Owner, b.Company)
	return body.String()
}

// WelcomeLink builds the mailto: URL that opens the welcome mail for lead.
func (b Brand) WelcomeLink(lead record.Lead) string {
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s",
		lead.Email,
		escape(b.WelcomeSubject()),
		escape(b.WelcomeBody(lead.Name)),
	)
}

// escape percent-encodes s for a mailto: header. Mail clients do not decode
// "+" as a space, so spaces are written as %20.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

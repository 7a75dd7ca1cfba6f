// Copyright OpenAleph contributors.
// SPDX-License-Identifier: MIT

package schema

// DefaultDefinitions returns a compact subset of the FollowTheMoney schema
// graph sufficient to exercise bucket routing, mapping and matching: a
// "Thing" root and its Person/LegalEntity/Organization/Company/PublicBody
// branch, an "Interval" root with Ownership/Membership/Payment, and a
// "Document" root with PlainText/Email/Page. Embedders that need the full
// upstream catalog load their own via LoadCatalogFile; this is the
// catalog used by tests and the CLI's default mode.
func DefaultDefinitions() []Definition {
	str := func(name string, matchable bool) Property {
		return Property{Name: name, Group: GroupText, IsMatchable: matchable}
	}
	kw := func(name string, group TypeGroup) Property {
		return Property{Name: name, Group: group, IsMatchable: true}
	}

	return []Definition{
		{
			Name:      "Thing",
			Matchable: true,
			Properties: []Property{
				{Name: "name", Group: GroupName, IsMatchable: true},
				kw("country", GroupCountry),
				kw("topics", GroupTopic),
				str("notes", false),
			},
		},
		{
			Name:      "LegalEntity",
			Extends:   []string{"Thing"},
			Matchable: true,
			Properties: []Property{
				kw("address", GroupAddress),
				kw("email", GroupEmail),
				kw("phone", GroupPhone),
				kw("idNumber", GroupIdentifier),
				kw("registrationNumber", GroupIdentifier),
			},
		},
		{
			Name:      "Person",
			Extends:   []string{"LegalEntity"},
			Matchable: true,
			Properties: []Property{
				{Name: "birthDate", Group: GroupDate, IsMatchable: true},
				kw("nationality", GroupCountry),
				kw("gender", GroupGender),
				kw("passportNumber", GroupIdentifier),
			},
		},
		{
			Name:      "Organization",
			Extends:   []string{"LegalEntity"},
			Matchable: true,
		},
		{
			Name:      "Company",
			Extends:   []string{"Organization"},
			Matchable: true,
			Properties: []Property{
				kw("jurisdiction", GroupCountry),
				kw("dunsCode", GroupIdentifier),
			},
		},
		{
			Name:      "PublicBody",
			Extends:   []string{"Organization"},
			Matchable: true,
		},
		{
			Name:      "Interval",
			Matchable: false,
			Properties: []Property{
				{Name: "startDate", Group: GroupDate, IsMatchable: true},
				{Name: "endDate", Group: GroupDate, IsMatchable: true},
			},
		},
		{
			Name:      "Ownership",
			Extends:   []string{"Interval"},
			Matchable: false,
			Properties: []Property{
				{Name: "owner", Group: GroupEntity, IsMatchable: true},
				{Name: "asset", Group: GroupEntity, IsMatchable: true},
			},
		},
		{
			Name:      "Membership",
			Extends:   []string{"Interval"},
			Matchable: false,
			Properties: []Property{
				{Name: "member", Group: GroupEntity, IsMatchable: true},
				{Name: "organization", Group: GroupEntity, IsMatchable: true},
			},
		},
		{
			Name:      "Payment",
			Extends:   []string{"Interval"},
			Matchable: false,
			Properties: []Property{
				{Name: "payer", Group: GroupEntity, IsMatchable: true},
				{Name: "beneficiary", Group: GroupEntity, IsMatchable: true},
				{Name: "amount", Group: GroupNumber, IsMatchable: false},
			},
		},
		{
			Name:      "Document",
			Matchable: true,
			Properties: []Property{
				{Name: "title", Group: GroupName, IsMatchable: true},
				{Name: "bodyText", Group: GroupText, IsMatchable: false},
				kw("mimeType", GroupMimetype),
				kw("language", GroupLanguage),
				kw("sha1", GroupChecksum),
			},
		},
		{
			Name:      "PlainText",
			Extends:   []string{"Document"},
			Matchable: true,
			Properties: []Property{
				{Name: "bodyHtml", Group: GroupHTML, IsMatchable: false},
			},
		},
		{
			Name:      "Email",
			Extends:   []string{"Document"},
			Matchable: true,
			Properties: []Property{
				kw("emailFrom", GroupEmail),
				kw("emailTo", GroupEmail),
			},
		},
		{
			Name:      "Page",
			Extends:   []string{"Document"},
			Matchable: true,
			Properties: []Property{
				{Name: "index", Group: GroupNumber, IsMatchable: false},
				{Name: "document", Group: GroupEntity, IsMatchable: false},
			},
		},
	}
}

// DefaultCatalog builds a Catalog from DefaultDefinitions.
func DefaultCatalog() (*Catalog, error) {
	return NewCatalog(DefaultDefinitions())
}

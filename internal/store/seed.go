package store

import "github.com/techtify/ensured-billing/internal/model"

func ptr[T any](v T) *T { return &v }

// Seed loads the demo dataset the portal ships with.
func Seed(s *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = seedUsers()
	s.tenders = seedTenders()
	s.invoices = seedInvoices()
	s.quotes = nil
}

func seedUsers() []model.User {
	return []model.User{
		{FirstName: "Eric", LastName: "Andrén", Display: "Eric Andrén", Email: "eric@techtify.se", ID: 101, ProfileImage: "/eric_white.png", Organisation: "all", Role: "admin", Type: model.UserTypeInsurer},
		{FirstName: "Niklas", LastName: "Liljendahl", Display: "Niklas Liljendahl", Email: "niklas@techtify.se", ID: 102, ProfileImage: "/niklas_forest.jpg", Organisation: "all", Role: "viewer", Type: model.UserTypePropertyOwner},
		{FirstName: "Dante", LastName: "Rohlin", Display: "Dante Rohlin", Email: "dante@techtify.se", ID: 103, ProfileImage: "/dante.png", Organisation: "all", Role: "viewer", Type: model.UserTypeContractor},
	}
}

func seedInvoices() []model.Invoice {
	return []model.Invoice{
		{TenderID: 451152231151, InvoicingPart: "Anders Bygg AB", InvoiceNumber: 1000, InvoiceDate: "2024-04-09", InvoiceDueDate: "2024-05-09", Amount: 100000, Currency: "SEK", Status: model.InvoiceStatusWaiting},
		{TenderID: 451152231152, InvoicingPart: "Bygg Pelle AB", InvoiceNumber: 1001, InvoiceDate: "2024-04-10", InvoiceDueDate: "2024-05-10", Amount: 100000, Currency: "SEK", Status: model.InvoiceStatusApproved},
		{TenderID: 451152231153, InvoicingPart: "Bröderna Bygg AB", InvoiceNumber: 1002, InvoiceDate: "2024-04-11", InvoiceDueDate: "2024-05-11", Amount: 100000, Currency: "SEK", Status: model.InvoiceStatusApproved},
		{TenderID: 451152231154, InvoicingPart: "Byggarna AB", InvoiceNumber: 1003, InvoiceDate: "2024-04-11", InvoiceDueDate: "2024-05-11", Amount: 100000, Currency: "SEK", Status: model.InvoiceStatusWaiting},
		{TenderID: 451152231154, InvoicingPart: "Renoverare AB", InvoiceNumber: 1004, InvoiceDate: "2024-07-15", InvoiceDueDate: "2024-08-15", Amount: 85000, Currency: "SEK", Status: model.InvoiceStatusDenied},
		{TenderID: 451152231154, InvoicingPart: "Tak & Bygg AB", InvoiceNumber: 1005, InvoiceDate: "2024-06-20", InvoiceDueDate: "2024-07-20", Amount: 150000, Currency: "SEK", Status: model.InvoiceStatusDenied},
	}
}

func seedTenders() []model.Tender {
	return []model.Tender{
		{
			ID: 451152231151,
			PropertyOwner: model.Party{
				Name: "PB Fastigheter", Address: "Testgatan 2", Zip: "112 40", Town: "Stockholm",
				Phone: "085431266", Email: "mail@mail.com",
				State: model.StepState{Current: 5, History: map[string]*string{
					"stepOne":   ptr("2023-05-23T10:30"),
					"stepTwo":   nil,
					"stepThree": ptr("2023-05-25T12:45"),
					"stepFour":  nil,
					"stepFive":  ptr("2023-05-25T12:00"),
				}},
			},
			Property:      model.Property{Name: "Skutan 10", Address: "Drottninggatan 36", Zip: "114 86", Town: "Stockholm", MapURL: "https://maps.app.goo.gl/2HrvfvZaQ62GK2rr7"},
			WinningTender: &model.WinningTender{Name: "Hans Bygg AB", TenderPrice: 100000, Currency: "SEK", ContactPerson: "Anders Svensson", Phone: "0734015242", ID: 1234},
			TenderType:    1,
			DamageType:    model.DamageType{Value: 1, Label: "Vattenskada"},
			Description:   "Lorem ipsum dolor sit amet ...",
			InsurerName:   "If Skadeförsäkring AB",
			Documents: []model.Document{
				{Title: "Besiktningsprotokoll", CreatedAt: "2023-03-24T12:00", ApprovalNeeded: false},
				{Title: model.DocumentTitleProtocol, CreatedAt: "2023-03-24T12:00", ApprovalNeeded: true, ApprovalStatus: ptr(model.ApprovalStatusWaiting)},
			},
			Status:     4,
			StartingAt: ptr("2025-05-01T10:30"),
			EndingAt:   ptr("2025-06-01T12:00"),
			PhaseDates: model.PhaseDates{Registered: "2025-04-28T10:30", BiddingStarted: "2025-05-01T10:30", AwaitingResponse: "2025-05-02T12:00", Approved: "2025-05-02T12:00"},
		},
		{
			ID: 451152231152,
			PropertyOwner: model.Party{
				Name: "PB Fastigheter", Address: "Testgatan 2", Zip: "112 40", Town: "Stockholm",
				Phone: "085431266", Email: "mail@mail.com",
				State: model.StepState{Current: 3, History: map[string]*string{
					"stepOne":   ptr("2023-05-20T09:15"),
					"stepTwo":   ptr("2023-05-21T14:30"),
					"stepThree": ptr("2023-05-22T11:45"),
					"stepFour":  nil,
					"stepFive":  nil,
				}},
			},
			Property:      model.Property{Name: "Skutan 11", Address: "Drottninggatan 37", Zip: "114 20", Town: "Stockholm"},
			WinningTender: &model.WinningTender{Name: "Bygg Pelle AB", TenderPrice: 100000, Currency: "SEK", ContactPerson: "Anders Svensson", Phone: "0734015242", ID: 1001},
			TenderType:    2,
			DamageType:    model.DamageType{Value: 2, Label: "Brand"},
			Description:   "Brand i kök som orsakade rök- och sotskador...",
			InsurerName:   "Länsförsäkringar Stockholm",
			Documents: []model.Document{
				{Title: "Besiktningsprotokoll", CreatedAt: "2023-05-20T12:00", ApprovalNeeded: false},
			},
			Status:     4,
			StartingAt: ptr("2025-09-02T12:00"),
			EndingAt:   ptr("2025-09-12T12:00"),
			PhaseDates: model.PhaseDates{Registered: "2025-04-28T10:30", BiddingStarted: "2025-05-01T10:30", Approved: "2025-05-02T12:00"},
		},
		{
			ID: 451152231153,
			PropertyOwner: model.Party{
				Name: "PB Fastigheter", Address: "Testgatan 2", Zip: "112 40", Town: "Stockholm",
				Phone: "085431266", Email: "mail@mail.com",
				State: model.StepState{Current: 2, History: map[string]*string{
					"stepOne":   ptr("2023-05-18T08:45"),
					"stepTwo":   ptr("2023-05-19T16:20"),
					"stepThree": nil,
					"stepFour":  nil,
					"stepFive":  nil,
				}},
			},
			Property:      model.Property{Name: "Skutan 12", Address: "Drottninggatan 38", Zip: "114 20", Town: "Stockholm"},
			WinningTender: &model.WinningTender{Name: "Bröderna Bygg AB", TenderPrice: 100000, Currency: "SEK", ContactPerson: "Anders Svensson", Phone: "0734015242", ID: 1002},
			TenderType:    2,
			DamageType:    model.DamageType{Value: 3, Label: "Skadegörelse"},
			Description:   "Skadegörelse på fasad och fönster...",
			InsurerName:   "Trygg-Hansa",
			Documents: []model.Document{
				{Title: "Polisanmälan", CreatedAt: "2023-05-18T10:00", ApprovalNeeded: false},
				{Title: "Besiktningsprotokoll", CreatedAt: "2023-05-19T14:00", ApprovalNeeded: false},
			},
			Status:     4,
			StartingAt: ptr("2025-05-01T10:30"),
			EndingAt:   ptr("2025-05-12T12:00"),
			PhaseDates: model.PhaseDates{Registered: "2025-04-28T10:30", BiddingStarted: "2025-05-01T10:30", AwaitingResponse: "2025-05-02T12:00", Approved: "2025-05-02T12:00"},
		},
		{
			ID: 451152231154,
			PropertyOwner: model.Party{
				Name: "Fastighets AB Centrum", Address: "Kungsgatan 15", Zip: "111 43", Town: "Stockholm",
				Phone: "084521337", Email: "info@centrum.se",
				State: model.StepState{Current: 4, History: map[string]*string{
					"stepOne":   ptr("2023-05-15T11:30"),
					"stepTwo":   ptr("2023-05-16T13:15"),
					"stepThree": ptr("2023-05-17T09:45"),
					"stepFour":  ptr("2023-05-18T15:30"),
					"stepFive":  nil,
				}},
			},
			Property:      model.Property{Name: "Centrum 5", Address: "Vasagatan 22", Zip: "111 20", Town: "Stockholm"},
			WinningTender: &model.WinningTender{Name: "Bygg & Fix AB", TenderPrice: 85000, Currency: "SEK", ContactPerson: "Maria Andersson", Phone: "0708123456", ID: 1235},
			TenderType:    1,
			DamageType:    model.DamageType{Value: 1, Label: "Vattenskada"},
			Description:   "Vattenläcka från våning ovanför...",
			InsurerName:   "Folksam",
			Documents: []model.Document{
				{Title: "Besiktningsprotokoll", CreatedAt: "2023-05-16T10:00", ApprovalNeeded: false},
				{Title: model.DocumentTitleProtocol, CreatedAt: "2023-05-18T16:00", ApprovalNeeded: true, ApprovalStatus: ptr(model.ApprovalStatusApproved)},
			},
			Status:     2,
			StartingAt: ptr("2024-05-20T08:00"),
			EndingAt:   ptr("2024-06-15T17:00"),
			PhaseDates: model.PhaseDates{Registered: "2024-05-15T11:30:00", BiddingStarted: "2024-05-16T13:15:00"},
		},
		{
			ID: 451152231155,
			PropertyOwner: model.Party{
				Name: "Bostadsrättsföreningen Tornet", Address: "Storgatan 8", Zip: "114 51", Town: "Stockholm",
				Phone: "087654321", Email: "styrelsen@tornet.se",
				State: model.StepState{Current: 2, History: map[string]*string{
					"stepOne":   ptr("2023-05-10T14:20"),
					"stepTwo":   ptr("2023-05-12T10:15"),
					"stepThree": nil,
					"stepFour":  nil,
					"stepFive":  nil,
				}},
			},
			Property:    model.Property{Name: "Tornet 3", Address: "Storgatan 8", Zip: "114 51", Town: "Stockholm"},
			TenderType:  1,
			DamageType:  model.DamageType{Value: 2, Label: "Brand"},
			Description: "Mindre brand i tvättstuga som orsakade rökskador...",
			InsurerName: "If Skadeförsäkring AB",
			Documents: []model.Document{
				{Title: "Brandutredning", CreatedAt: "2023-05-11T09:00", ApprovalNeeded: false},
				{Title: "Besiktningsprotokoll", CreatedAt: "2023-05-12T11:00", ApprovalNeeded: false},
			},
			Status:   1,
			EndingAt: ptr("2024-08-15T12:00"),
		},
	}
}

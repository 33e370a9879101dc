package dataset

import "github.com/fieldlens/concierge/domain"

func fixtureOrders() []domain.Order {
	return []domain.Order{
		{
			Doctor: "Dr. Sarah Johnson", OrderID: "ORD-001", Status: "On Hold",
			Product: "Guardant360", Date: "2024-01-15", Amount: 2500, Quantity: 1,
			Hospital: "General Hospital", Specialty: "Oncology",
		},
		{
			Doctor: "Dr. Julie Martinez", OrderID: "ORD-012", Status: "On Hold",
			Product: "Guardant360", Date: "2024-01-21", Amount: 2500, Quantity: 1,
			Hospital: "Health System North", Specialty: "Oncology",
		},
		{
			Doctor: "Dr. Julie Martinez", OrderID: "ORD-013", Status: "Completed",
			Product: "Guardant Reveal", Date: "2024-01-18", Amount: 3600, Quantity: 2,
			Hospital: "Health System North", Specialty: "Oncology",
		},
		{
			Doctor: "Dr. Ahmed Shafique", OrderID: "ORD-009", Status: "Completed",
			Product: "Guardant360", Date: "2024-01-20", Amount: 2500, Quantity: 1,
			Hospital: "Regional Medical Center", Specialty: "Pathology",
		},
		{
			Doctor: "Dr. Ahmed Shafique", OrderID: "ORD-014", Status: "Processing",
			Product: "GuardantOMNI", Date: "2024-01-25", Amount: 4200, Quantity: 1,
			Hospital: "Regional Medical Center", Specialty: "Pathology",
		},
	}
}

func fixtureCompliance() []ComplianceRecord {
	return []ComplianceRecord{
		{Doctor: "Dr. Ahmed Shafique", AnnualLimit: 5000, CurrentSpent: 3250, LastUpdated: "2024-01-25"},
		{Doctor: "Dr. Julie Martinez", AnnualLimit: 3500, CurrentSpent: 2100, LastUpdated: "2024-01-25"},
		{Doctor: "Dr. Sarah Johnson", AnnualLimit: 6000, CurrentSpent: 5100, LastUpdated: "2024-01-25"},
	}
}

func fixtureEngagements() []Engagement {
	return []Engagement{
		{
			Doctor: "Dr. Julie Martinez", EngagementID: "ENG-012", Type: "Email Communication",
			Date: "2024-01-22", Rep: "Maria Garcia", Outcome: "Positive - Questions answered",
			TalkingPoints: []string{
				"Technical specifications clarified",
				"Ordering process simplified",
				"Support availability confirmed",
			},
			NextSteps: "Follow up in 2 weeks for ordering decision",
			ContactsMade: []domain.ContactMade{
				{ContactType: "phone_call", Contact: "Lab Director John Smith", Date: "2024-01-20", Purpose: "Test logistics discussion"},
				{ContactType: "email", Contact: "Pathologist Dr. Williams", Date: "2024-01-21", Purpose: "Result interpretation guidance"},
				{ContactType: "meeting", Contact: "Hospital Administrator Ms. Davis", Date: "2024-01-22", Purpose: "Budget and procurement discussion"},
			},
		},
		{
			Doctor: "Dr. Ahmed Shafique", EngagementID: "ENG-013", Type: "In-Person Visit",
			Date: "2024-01-20", Rep: "John Smith", Outcome: "Positive - Discussed volume pricing",
			TalkingPoints: []string{
				"Volume discounts available for bulk orders",
				"Streamlined bulk ordering process",
				"Dedicated implementation support",
			},
			NextSteps: "Prepare volume pricing proposal",
			ContactsMade: []domain.ContactMade{
				{ContactType: "meeting", Contact: "Hospital Administrator Jane Doe", Date: "2024-01-19", Purpose: "Budget approval process"},
				{ContactType: "phone_call", Contact: "IT Manager Bob Johnson", Date: "2024-01-20", Purpose: "System integration requirements"},
				{ContactType: "email", Contact: "Procurement Director Lisa Wang", Date: "2024-01-20", Purpose: "Contract terms negotiation"},
			},
		},
		{
			Doctor: "Dr. Sarah Johnson", EngagementID: "ENG-001", Type: "In-Person Visit",
			Date: "2024-01-15", Rep: "John Smith", Outcome: "Positive - Interested in Guardant360",
			TalkingPoints: []string{
				"Guardant360 comprehensive genomic profiling",
				"Faster turnaround time benefits",
				"Clinical utility and impact on patient care",
			},
			NextSteps: "Schedule product demonstration",
			ContactsMade: []domain.ContactMade{
				{ContactType: "email", Contact: "Oncology Nurse Lisa Chen", Date: "2024-01-14", Purpose: "Workflow integration discussion"},
				{ContactType: "phone_call", Contact: "Medical Director Dr. Brown", Date: "2024-01-15", Purpose: "Clinical approval and adoption"},
			},
		},
	}
}

func fixtureTrends() []domain.ProductTrend {
	return []domain.ProductTrend{
		{Product: "Guardant360", Month: "2024-01", Orders: 47, Completed: 44, Cancelled: 3, GrowthPct: 4.4, CompletionRate: 93.6, AvgTurnaround: 7.2},
		{Product: "GuardantOMNI", Month: "2024-01", Orders: 33, Completed: 30, Cancelled: 3, GrowthPct: 5.4, CompletionRate: 90.9, AvgTurnaround: 10.1},
		{Product: "Guardant Reveal", Month: "2024-01", Orders: 31, Completed: 29, Cancelled: 2, GrowthPct: 20.6, CompletionRate: 93.5, AvgTurnaround: 8.5},
	}
}

func fixtureRegions() []domain.RegionPerformance {
	return []domain.RegionPerformance{
		{Region: "Northeast", TotalOrders: 156, Revenue: 425000, GrowthPct: 8.2, TopProducts: []string{"Guardant360", "Guardant Reveal"}, KeyAccounts: 23},
		{Region: "Southeast", TotalOrders: 203, Revenue: 567000, GrowthPct: 12.1, TopProducts: []string{"GuardantOMNI", "Guardant360"}, KeyAccounts: 31},
		{Region: "West", TotalOrders: 134, Revenue: 378000, GrowthPct: 6.7, TopProducts: []string{"Guardant360", "Guardant Reveal"}, KeyAccounts: 19},
	}
}

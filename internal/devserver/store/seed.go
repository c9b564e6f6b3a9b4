package store

import "time"

func (s *Store) seed() {
	now := s.now()
	in := func(days int) *time.Time {
		t := now.AddDate(0, 0, days)
		return &t
	}

	s.activities = []*Activity{
		{
			ID:          "act-flood-relief",
			Title:       "Bantuan Banjir Jakarta",
			Description: "Emergency food and clean water for families affected by the floods.",
			Category:    "Bencana",
			TargetMoney: 50_000_000,
			Deadline:    in(30),
			Location:    &Location{Name: "Jakarta Timur", Lat: -6.225, Lng: 106.9},
			Volunteers:  []Volunteer{},
		},
		{
			ID:          "act-school-books",
			Title:       "Buku untuk Sekolah Desa",
			Description: "Books and stationery for a village school in Nusa Tenggara Timur.",
			Category:    "Pendidikan",
			TargetMoney: 15_000_000,
			Deadline:    in(60),
			Location:    &Location{Name: "Kupang", Lat: -10.177, Lng: 123.607},
			Volunteers:  []Volunteer{},
		},
		{
			ID:          "act-beach-cleanup",
			Title:       "Bersih Pantai Kuta",
			Description: "Monthly beach cleanup. Volunteers welcome.",
			TargetMoney: 2_500_000,
			Volunteers:  []Volunteer{},
		},
	}

	s.news = []News{
		{ID: "news-1", ActivityID: "act-flood-relief", Title: "First aid packages delivered", Content: "200 packages reached the shelters.", CreatedAt: now.AddDate(0, 0, -2)},
		{ID: "news-2", ActivityID: "act-school-books", Title: "Book list ready", Content: "Teachers sent the list of needed books.", CreatedAt: now.AddDate(0, 0, -5)},
	}

	s.expenses = []Expense{
		{ID: "exp-1", ActivityID: "act-flood-relief", Title: "Rice", Description: "500 kg of rice", Amount: 6_000_000},
		{ID: "exp-2", ActivityID: "act-flood-relief", Title: "Water", Description: "Drinking water", Amount: 1_500_000},
	}

	s.plans = []Plan{
		{ID: "plan-basic", Name: "Basic", Description: "Support one activity every month", Amount: 25_000, Benefits: []string{"Monthly report"}},
		{ID: "plan-premium", Name: "Premium", Description: "Support three activities every month", Amount: 50_000, Benefits: []string{"Monthly report", "Supporter badge"}},
		{ID: "plan-gold", Name: "Gold", Description: "Support every activity", Amount: 100_000, Benefits: []string{"Monthly report", "Supporter badge", "Event invitations"}},
	}
}

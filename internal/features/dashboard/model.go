package dashboard

// Summary is the landing-page snapshot.
type Summary struct {
	ActiveMembers    int64   `json:"aktifUyeler"`
	PassiveMembers   int64   `json:"pasifUyeler"`
	Subscribers      int64   `json:"aboneler"`
	OpenDebts        int64   `json:"acikBorclar"`
	OutstandingTotal float64 `json:"toplamKalan"`
	CollectedTotal   float64 `json:"toplamTahsilat"`
}

// MonthlyCollection is one bar of the collected-by-month chart.
type MonthlyCollection struct {
	Year  int     `json:"yil" bson:"yil"`
	Month int     `json:"ay" bson:"ay"`
	Total float64 `json:"toplam" bson:"toplam"`
}

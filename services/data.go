package services

type currencyPair struct {
	from, to string
}

var exchangeRates = map[currencyPair]float64{
	{"USD", "EUR"}: 0.92, {"EUR", "USD"}: 1.09,
	{"USD", "GBP"}: 0.79, {"GBP", "USD"}: 1.27,
	{"USD", "INR"}: 83.50, {"INR", "USD"}: 0.012,
	{"EUR", "GBP"}: 0.86, {"GBP", "EUR"}: 1.16,
	{"USD", "JPY"}: 154.50, {"JPY", "USD"}: 0.0065,
	{"EUR", "INR"}: 90.80, {"INR", "EUR"}: 0.011,
}

var members = map[string]MemberResponse{
	"test@email.com": {Name: "Alice Johnson", MemberID: "MEM-1001", Tier: "Gold", Points: 52400},
	"john@demo.com":  {Name: "John Smith", MemberID: "MEM-1002", Tier: "Silver", Points: 18700},
	"sara@demo.com":  {Name: "Sara Williams", MemberID: "MEM-1003", Tier: "Platinum", Points: 105000},
}

var airlines = []string{"SkyWay Airlines", "AeroConnect", "GlobalJet"}

var conditions = []string{"Sunny", "Partly Cloudy", "Cloudy", "Rainy", "Thunderstorm", "Snowy", "Windy", "Clear"}

var departureMinutes = []string{"00", "15", "30", "45"}

var moviesByGenre = map[string][]Movie{
	"sci-fi": {
		{MovieID: "MOV-301", Title: "Quantum Horizon", Rating: 8.4, Showtime: "7:00 PM"},
		{MovieID: "MOV-302", Title: "Neural Frontier", Rating: 7.9, Showtime: "9:30 PM"},
		{MovieID: "MOV-303", Title: "The Singularity Code", Rating: 8.1, Showtime: "6:15 PM"},
	},
	"action": {
		{MovieID: "MOV-401", Title: "Steel Thunder", Rating: 7.5, Showtime: "8:00 PM"},
		{MovieID: "MOV-402", Title: "Rogue Protocol", Rating: 8.0, Showtime: "9:00 PM"},
	},
	"comedy": {
		{MovieID: "MOV-501", Title: "Office Chaos", Rating: 7.2, Showtime: "6:30 PM"},
		{MovieID: "MOV-502", Title: "The Unlikely Pair", Rating: 7.8, Showtime: "8:45 PM"},
	},
	"drama": {
		{MovieID: "MOV-601", Title: "The Last Letter", Rating: 8.6, Showtime: "7:30 PM"},
		{MovieID: "MOV-602", Title: "Echoes of Tomorrow", Rating: 8.2, Showtime: "9:15 PM"},
	},
}

package patterns

// usStates maps postal abbreviations to state names. DC is included so the
// table covers every jurisdiction that issues its own postal code.
var usStates = map[string]string{
	"AL": "Alabama",
	"AK": "Alaska",
	"AZ": "Arizona",
	"AR": "Arkansas",
	"CA": "California",
	"CO": "Colorado",
	"CT": "Connecticut",
	"DE": "Delaware",
	"DC": "District of Columbia",
	"FL": "Florida",
	"GA": "Georgia",
	"HI": "Hawaii",
	"ID": "Idaho",
	"IL": "Illinois",
	"IN": "Indiana",
	"IA": "Iowa",
	"KS": "Kansas",
	"KY": "Kentucky",
	"LA": "Louisiana",
	"ME": "Maine",
	"MD": "Maryland",
	"MA": "Massachusetts",
	"MI": "Michigan",
	"MN": "Minnesota",
	"MS": "Mississippi",
	"MO": "Missouri",
	"MT": "Montana",
	"NE": "Nebraska",
	"NV": "Nevada",
	"NH": "New Hampshire",
	"NJ": "New Jersey",
	"NM": "New Mexico",
	"NY": "New York",
	"NC": "North Carolina",
	"ND": "North Dakota",
	"OH": "Ohio",
	"OK": "Oklahoma",
	"OR": "Oregon",
	"PA": "Pennsylvania",
	"RI": "Rhode Island",
	"SC": "South Carolina",
	"SD": "South Dakota",
	"TN": "Tennessee",
	"TX": "Texas",
	"UT": "Utah",
	"VT": "Vermont",
	"VA": "Virginia",
	"WA": "Washington",
	"WV": "West Virginia",
	"WI": "Wisconsin",
	"WY": "Wyoming",
}

var usTerritories = map[string]string{
	"PR": "Puerto Rico",
	"GU": "Guam",
	"VI": "U.S. Virgin Islands",
	"MP": "Northern Mariana Islands",
	"AS": "American Samoa",
}

var usReferences = []string{
	"United States",
	"USA",
	"U.S.A.",
	"U.S.",
	"US",
}

// corporateSuffixes are legal forms that end company names. "co." keeps its
// dot so "Denver, CO" still reads as Colorado.
var corporateSuffixes = map[string]bool{
	"inc": true, "inc.": true, "incorporated": true,
	"llc": true, "l.l.c.": true,
	"ltd": true, "ltd.": true, "limited": true,
	"corp": true, "corp.": true, "corporation": true,
	"co.": true,
	"plc": true, "llp": true, "lp": true, "l.p.": true,
	"gmbh": true, "ag": true, "s.a.": true, "b.v.": true,
}

// foreignCities maps non-US cities to the ISO country code LinkedIn prints
// after them. Only pairs whose code collides with a state code matter.
var foreignCities = map[string]string{
	"toronto": "CA", "vancouver": "CA", "montreal": "CA", "ottawa": "CA", "calgary": "CA",
	"berlin": "DE", "munich": "DE", "hamburg": "DE", "frankfurt": "DE", "cologne": "DE", "stuttgart": "DE",
	"bogota": "CO", "bogotá": "CO", "medellin": "CO", "medellín": "CO", "cali": "CO",
	"buenos aires": "AR", "cordoba": "AR", "córdoba": "AR", "rosario": "AR",
	"panama city": "PA", "panama": "PA",
	"casablanca": "MA", "rabat": "MA", "marrakesh": "MA",
	"bangalore": "IN", "bengaluru": "IN", "mumbai": "IN", "delhi": "IN", "new delhi": "IN",
	"hyderabad": "IN", "pune": "IN", "chennai": "IN",
	"tel aviv": "IL", "jerusalem": "IL", "haifa": "IL",
	"jakarta": "ID", "tunis": "TN", "valletta": "MT", "libreville": "GA",
	"chisinau": "MD", "ulaanbaatar": "MN", "vientiane": "LA", "podgorica": "ME",
	"tirana": "AL", "khartoum": "SD", "niamey": "NE",
}

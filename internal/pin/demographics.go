package pin

// MatchesDate reports whether pin can be derived from a YYYY-MM-DD date.
//
// The date is cut by fixed offsets and never calendar-validated, so
// "1990-02-30" or "1990-13-01" are processed as-is. Malformed text yields
// short slices that simply fail to match.
func MatchesDate(pin, date string) bool {
	if date == "" {
		return false
	}
	if len(pin) != 4 && len(pin) != 6 {
		return false
	}

	year := substr(date, 0, 4)
	month := substr(date, 5, 7)
	day := substr(date, 8, 10)
	yy := tail(year, 2)

	candidates := [...]string{
		day + month,
		month + day,
		yy + month,
		yy + day,
		month + yy,
		day + yy,
		day + month + yy,
		month + day + yy,
		yy + month + day,
		yy + day + month,
	}

	for _, v := range candidates {
		switch len(pin) {
		case 4:
			if head(v, 4) == pin || tail(v, 4) == pin {
				return true
			}
		case 6:
			if v == pin || (len(v) >= 6 && v[:6] == pin) {
				return true
			}
		}
	}
	return false
}

// CheckDemographics returns a reason code for every provided date the PIN
// can be derived from, in the order self, spouse, anniversary.
func CheckDemographics(pin string, d Demographics) []string {
	out := make([]string, 0, 3)
	if d.DOB != "" && MatchesDate(pin, d.DOB) {
		out = append(out, ReasonDemographicSelf)
	}
	if d.SpouseDOB != "" && MatchesDate(pin, d.SpouseDOB) {
		out = append(out, ReasonDemographicSpouse)
	}
	if d.Anniversary != "" && MatchesDate(pin, d.Anniversary) {
		out = append(out, ReasonDemographicAnniversary)
	}
	return out
}

// substr is s[from:to] clamped to the string bounds.
func substr(s string, from, to int) string {
	if from > len(s) {
		return ""
	}
	if to > len(s) {
		to = len(s)
	}
	return s[from:to]
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

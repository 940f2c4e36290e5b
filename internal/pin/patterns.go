package pin

// Numeric keypad shapes (columns and diagonals). Pure membership, no
// keypad-distance computation.
var keyboard4 = toSet(
	"2580", "0852", "1470", "7410", "3690", "9630",
	"1590", "0951", "3570", "0753", "1478", "3698",
)

var keyboard6 = toSet(
	"147258", "258369", "147369", "369147", "741852", "852963",
	"963852", "852741", "159753", "357951", "159357", "753951",
)

// DetectPatterns returns the structural pattern labels that apply to pin,
// in fixed order: repetition, sequence, keyboard.
func DetectPatterns(pin string) []string {
	out := make([]string, 0, 3)
	if isRepeated(pin) {
		out = append(out, PatternRepeated)
	}
	if isSequential(pin) {
		out = append(out, PatternSequential)
	}
	if isKeyboard(pin) {
		out = append(out, PatternKeyboard)
	}
	return out
}

func isRepeated(pin string) bool {
	if len(pin) < 2 {
		return false
	}
	allSame := true
	for i := 1; i < len(pin); i++ {
		if pin[i] != pin[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return true
	}

	switch len(pin) {
	case 4:
		// 1122, 3344: the two pairs need not match each other
		return pin[0] == pin[1] && pin[2] == pin[3]
	case 6:
		pairs := pin[0] == pin[1] && pin[2] == pin[3] && pin[4] == pin[5]
		halves := pin[:3] == pin[3:]
		return pairs || halves
	}
	return false
}

// isSequential reports a strict +1 or -1 run across the whole string.
// 9->0 does not wrap.
func isSequential(pin string) bool {
	if len(pin) < 2 {
		return false
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return false
		}
	}
	asc, desc := true, true
	for i := 1; i < len(pin); i++ {
		d := int(pin[i]) - int(pin[i-1])
		if d != 1 {
			asc = false
		}
		if d != -1 {
			desc = false
		}
	}
	return asc || desc
}

func isKeyboard(pin string) bool {
	switch len(pin) {
	case 4:
		_, ok := keyboard4[pin]
		return ok
	case 6:
		_, ok := keyboard6[pin]
		return ok
	}
	return false
}

package pin

// Curated industry-common PINs: ascending/descending runs, repeated digits,
// notable years and keypad shapes. "2345" is deliberately left out of the
// 4-digit set; only one snapshot of the list carries it.
var common4 = toSet(
	"1234", "1111", "0000", "1212", "7777", "1004", "2000", "4444",
	"2222", "6969", "9999", "3333", "5555", "6666", "1122", "1313",
	"8888", "4321", "2001", "1010", "2580", "0852", "1230", "1112",
	"1221", "2468", "1357", "9876", "0123", "4567", "6789", "1999",
	"1998", "1990", "2020", "2021", "2012", "1984", "1985", "1986",
	"1987", "1988", "1989", "1991", "1992", "1993", "1994", "1995",
	"1996", "1997", "0007", "0101", "1100", "1200", "1001", "2112",
	"1414", "2323", "3131", "5150", "7410", "1470", "3690", "0987",
	"5678", "4242", "2121", "1123", "9000", "7000", "3000",
)

var common6 = toSet(
	"123456", "111111", "000000", "654321", "121212", "666666",
	"112233", "123123", "159753", "696969", "777777", "222222",
	"555555", "999999", "888888", "333333", "444444", "789456",
	"147258", "258369", "987654", "123321", "131313", "520520",
	"123654", "147852", "789789", "159357", "369369", "246810",
	"101010", "102030", "112358", "121314", "123789", "456789",
	"098765", "012345", "100200", "200000", "100000", "010203",
)

func toSet(vals ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		m[v] = struct{}{}
	}
	return m
}

// IsCommonlyUsed reports whether pin is in the common-PIN dictionary for its
// length. Lengths other than 4 and 6 are never considered common.
func IsCommonlyUsed(pin string) bool {
	var set map[string]struct{}
	switch len(pin) {
	case 4:
		set = common4
	case 6:
		set = common6
	default:
		return false
	}
	_, ok := set[pin]
	return ok
}

package model

// PriceValue converts a textual price to an integer amount.
//
// Semantics match lenient integer parsing of the original data: leading
// whitespace is skipped, an optional sign is honored, and parsing stops at
// the first non-digit. A price with no leading digits ("free", "") yields
// 0 instead of an error, so a malformed row degrades a total rather than
// aborting a checkout.
func PriceValue(price string) int64 {
	i := 0
	for i < len(price) && (price[i] == ' ' || price[i] == '\t' || price[i] == '\n' || price[i] == '\r') {
		i++
	}

	neg := false
	if i < len(price) && (price[i] == '+' || price[i] == '-') {
		neg = price[i] == '-'
		i++
	}

	var n int64
	digits := 0
	for ; i < len(price) && price[i] >= '0' && price[i] <= '9'; i++ {
		n = n*10 + int64(price[i]-'0')
		digits++
	}
	if digits == 0 {
		return 0
	}
	if neg {
		return -n
	}
	return n
}

// LineTotal returns the contribution of one cart line to an order total.
func LineTotal(line CartLine) int64 {
	return PriceValue(line.Product.Price) * int64(line.Quantity)
}

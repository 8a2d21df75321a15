package card

// Cards2bytes flattens a card slice to its raw byte encoding, e.g. for
// hashing a hand or writing it to a compact log field.
func Cards2bytes(cs []Card) []byte {
	out := make([]byte, 0, len(cs))
	for _, c := range cs {
		out = append(out, byte(c))
	}
	return out
}

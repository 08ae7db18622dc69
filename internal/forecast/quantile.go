package forecast

// QuantileBand turns a mean forecast into a low/median/high band using a fixed
// ±20% spread: q50 = mean, q10 = 0.8·mean, q90 = 1.2·mean. This is a cheap
// approximation of demand uncertainty, not a statistically derived prediction
// interval, and is documented as such in the forecast metadata notes.
func QuantileBand(mean float64) (q10, q50, q90 float64) {
	return 0.8 * mean, mean, 1.2 * mean
}

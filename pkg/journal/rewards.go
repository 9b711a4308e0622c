package journal

// Rewards computes the token reward for saving an entry: one token per
// ten words, plus a flat bonus for wallet-connected writers.
func Rewards(content string, hasWallet bool) int {
	reward := CountWords(content) / 10
	if hasWallet {
		reward += 5
	}
	return reward
}

package constants

// Redis key for the cached external routing probability distribution
const KeyRoutingProbs = "routing:probs"

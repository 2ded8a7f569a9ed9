package usecase

// ContextCheckInterval is how many records are read between cancellation checks.
const ContextCheckInterval = 1000

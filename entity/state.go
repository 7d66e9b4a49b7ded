package entity

// PurchaseState is a step of the purchase chain. States only move forward.
type PurchaseState string

const (
	StateBuilt         PurchaseState = "built"
	StateSigned        PurchaseState = "signed"
	StateAwaitingStep1 PurchaseState = "awaiting_step_1"
	StateAwaitingStep2 PurchaseState = "awaiting_step_2"
	StateAwaitingStep3 PurchaseState = "awaiting_step_3"
	StateVerified      PurchaseState = "verified"
	StateClassified    PurchaseState = "classified"
	StateAborted       PurchaseState = "aborted"
)

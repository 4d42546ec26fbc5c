package apperrors

import "errors"

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrInsufficientStock indicates a sale requested more units than the product has in stock.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrInvalidQuantity indicates a quantity that is not a positive integer.
var ErrInvalidQuantity = errors.New("invalid quantity")

// ErrInvalidPayment indicates a payment with a missing person or non-positive amount.
var ErrInvalidPayment = errors.New("invalid payment")

// ErrPersistence indicates an I/O failure while saving, backing up or exporting the workbook.
var ErrPersistence = errors.New("persistence failure")

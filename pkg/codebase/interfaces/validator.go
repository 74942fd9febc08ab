package interfaces

// Validator abstraction
type Validator interface {
	ValidateStruct(data interface{}) error
}

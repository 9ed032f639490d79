// Package model defines the model invocation layer: the Transport interface
// implemented by provider bindings (see the openai and anthropic
// sub-packages) and the Gateway that sends a conversation snapshot plus tool
// catalog through a transport and classifies the raw completion into a
// core.ModelResponse. Provider-specific response shapes never leak past this
// package.
package model

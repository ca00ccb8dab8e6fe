package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Library dispatches the function calls of a model to Go functions.
type Library func(context.Context, *genai.FunctionCall) *genai.FunctionResponse

// Func is a function the model can call.
type Func struct {
	Decl *genai.FunctionDeclaration
	Call func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

// NewLibrary returns a Library calling 'functions' by name.
func NewLibrary(functions ...*Func) Library {
	return func(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
		for _, f := range functions {
			if f.Decl.Name == call.Name {
				return f.Call(ctx, call.ID, call.Args)
			}
		}
		return errorResponse(call.ID, call.Name, fmt.Errorf("unknown function %s", call.Name))
	}
}

// Declarations returns the declarations of 'functions', for the model config.
func Declarations(functions ...*Func) []*genai.FunctionDeclaration {
	result := make([]*genai.FunctionDeclaration, 0, len(functions))
	for _, f := range functions {
		result = append(result, f.Decl)
	}
	return result
}

func errorResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:       id,
		Name:     name,
		Response: map[string]any{"error": err.Error()},
	}
}

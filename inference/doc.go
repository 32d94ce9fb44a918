// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package inference sends chat completion requests to a deployed model and extracts the
// generated text.
//
// Requests are wrapped in the chatCompletions envelope understood by vLLM-based serving
// containers:
//
//	{"@requestFormat":"chatCompletions","messages":[...],"max_tokens":512,"temperature":0.2,"top_p":0.9}
//
// Responses are decoded with a typed schema. Both a nested list of choices and a flat list
// of choices are accepted; anything else yields a [*types.ResponseShapeError].
package inference

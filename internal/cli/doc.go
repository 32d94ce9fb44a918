// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli implements the vertexops command line.
//
// Commands are grouped by resource:
//
//	vertexops bucket   create|delete|list|upload|download|put|get|url
//	vertexops model    register|get|list|delete
//	vertexops endpoint list|get|find|create|deploy|deployments|undeploy|delete|teardown
//	vertexops predict  text|chat
//
// Settings come from the environment and an optional .env file, see package config.
package cli

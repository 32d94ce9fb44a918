// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package endpoint manages serving endpoints and the models deployed to them, addressing
// endpoints by display name.
//
// Display names are not unique on the remote system. Every lookup lists endpoints with an
// exact display name filter ordered by creation time and picks the oldest, so repeated
// lookups within a run resolve to the same endpoint. A warning is logged when a name is
// ambiguous.
//
// # Lifecycle
//
// For each display name the workflow moves through:
//
//	absent --CreateEndpoint--> empty --DeployRegisteredModel--> serving
//	serving --UndeployByDeploymentID / UndeployByDisplayName--> empty
//	empty --DeleteEndpoint--> absent
//
// [Lifecycle.DeployRegisteredModel] always creates a new endpoint, so calling it twice with
// the same display name leaves two endpoints behind. [Lifecycle.DeleteEndpoint] does not
// undeploy first; the remote rejection is returned unchanged. [Lifecycle.Teardown] performs
// both steps in order.
//
// # Not Found Handling
//
// Undeploy and delete treat a missing endpoint or deployment as a reportable outcome
// ([ResultEndpointNotFound], [ResultDeploymentNotFound]) rather than an error. Deploy and
// direct gets return [*types.NotFoundError].
package endpoint

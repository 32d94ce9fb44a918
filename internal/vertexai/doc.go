// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package vertexai binds the endpoint, model and prediction interfaces of package types to
// the Vertex AI v1 API.
//
// # Architecture
//
// A [Client] owns one regional connection per API surface and exposes them as services:
//
//   - [EndpointService]: endpoint create/list/get/delete plus model deploy and undeploy
//   - [ModelService]: model upload, get, list and delete
//   - [PredictionService]: online prediction
//
// Long-running operations (endpoint creation and deletion, deploy, undeploy, model upload
// and deletion) block until the operation completes.
//
// # Usage
//
//	client, err := vertexai.NewClient(ctx, "my-project", "us-central1",
//		vertexai.WithCredentialsFile("/path/to/key.json"),
//	)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	endpoints, err := client.Endpoints().ListEndpoints(ctx, types.EndpointFilter{DisplayName: "e1"})
//
// # Errors
//
// gRPC NotFound statuses are returned as [*types.NotFoundError]. Every other failure is
// returned as [*types.RemoteError] carrying the original status error.
package vertexai

// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package vertexai

import (
	"fmt"

	"cloud.google.com/go/auth"
	"cloud.google.com/go/auth/credentials"
)

// CloudPlatformScope is the OAuth scope used by the Vertex AI clients.
const CloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// DetectCredentials loads credentials for scopes from the service account key at file,
// or from Application Default Credentials when file is empty.
func DetectCredentials(file string, scopes ...string) (*auth.Credentials, error) {
	if len(scopes) == 0 {
		scopes = []string{CloudPlatformScope}
	}
	creds, err := credentials.DetectDefault(&credentials.DetectOptions{
		Scopes:          scopes,
		CredentialsFile: file,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to detect credentials: %w", err)
	}
	return creds, nil
}

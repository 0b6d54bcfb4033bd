// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package oauthflow

import "fmt"

func errNoDeviceEndpoint(host string) error {
	return fmt.Errorf("provider %q has no device_auth_url configured", host)
}

func errUnknownFlow(flow string) error {
	return fmt.Errorf("unknown flow %q", flow)
}

func errDeviceCodeExpired() error {
	return fmt.Errorf("device code expired before authorization completed")
}

func errMissingDeviceCode() error {
	return fmt.Errorf("device authorization response missing device_code")
}

func errMissingAccessToken() error {
	return fmt.Errorf("token response missing access_token")
}

func errDeviceAccessDenied() error {
	return fmt.Errorf("user denied device authorization")
}

func errUnknownDeviceError(code, desc string) error {
	return fmt.Errorf("device token poll failed: %s: %s", code, desc)
}

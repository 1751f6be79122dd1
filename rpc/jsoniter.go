// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// jsoniterSerializer replaces echo's default encoding/json-backed
// (de)serializer with json-iterator/go, so every c.JSON/c.Bind call in this
// package runs through the faster codec without each handler having to
// remember to call it directly.
type jsoniterSerializer struct{}

func (jsoniterSerializer) Serialize(c echo.Context, i any, indent string) error {
	enc := jsonAPI.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsoniterSerializer) Deserialize(c echo.Context, i any) error {
	if err := jsonAPI.NewDecoder(c.Request().Body).Decode(i); err != nil {
		return fmt.Errorf("rpc: decoding request body: %w", err)
	}
	return nil
}

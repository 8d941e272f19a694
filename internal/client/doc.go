// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client of the relay.
//
// An [App] imports the configured app state sync key, registers the device
// and then runs one command: a long-running sync loop, a one-shot pull or a
// single pushed action (mute, pin, archive, star, push name, locale).
// Applied mutations are printed to the output writer as they arrive.
package client

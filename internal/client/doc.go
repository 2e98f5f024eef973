// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the photosync application runtime.
//
// It acquires the sync stores, wires the rate limiter, retrier and sync
// engine around the remote photo service, runs the sync once or in watch
// mode, and releases every resource on all exit paths.
package client

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pricing turns a provider's pricing rule into an effective unit
// price.
//
// A Rule is one of ManualRule, WebRule or FallbackRule. Web rules scrape a
// pricing page: the body is optionally narrowed with a CSS selector
// (goquery), then matched with an ECMAScript-compatible, case-insensitive
// regular expression (regexp2) whose first capture group is the price.
//
// Resolution never fails. Every fetch or extraction error degrades to the
// rule's fallback price and is only visible through Resolved.Source.
//
// # Usage
//
//	resolver := pricing.NewResolver(pricing.NewHTTPFetcher())
//	prices := resolver.ResolveAll(ctx, cfg.Providers)
//	fmt.Println(prices["vertex_ai"].Source)
package pricing

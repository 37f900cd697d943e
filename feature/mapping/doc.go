// Package mapping stores named column-mapping profiles.
//
// A profile records which source columns feed each logical field together
// with the designator delimiter and auto-suppression prefixes, so a recurring
// export format only has to be mapped once. Profiles live in the
// mapping_profiles table; when a requested profile does not exist the
// defaults from the mapping configuration section are used.
//
// # Routes
//
//   - GET /mappings: list profiles
//   - GET /mappings/:name: fetch a profile (falls back to the configured defaults)
//   - PUT /mappings/:name: create or replace a profile
//   - DELETE /mappings/:name: remove a profile
package mapping

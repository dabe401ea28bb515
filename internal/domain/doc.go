// Package domain models the weather stations and measurements the console
// works with.
//
// # Data sources
//
// Measurements come from Toulouse Métropole open-data weather stations, in
// two shapes sharing the same columns:
//
//   - CSV exports, one semicolon-delimited file per station, using the
//     dataset's French column names (temperature, humidite, pression, pluie,
//     heure_de_paris).
//   - The OpenDataSoft records API, which serves the same datasets as JSON
//     (temperature_en_degre_c, humidite, pression, pluie, heure_utc).
//
// # Unit conventions
//
// Temperature is in degrees Celsius, humidity in percent, rainfall in
// millimetres. Pressure is stored in hectopascals; some station exports
// report pascals instead, and values above 10000 are assumed to be pascals
// and divided by 100 (no plausible surface pressure exceeds 1100 hPa).
// A pressure of 0 means the station did not report one.
//
// # Measurement IDs
//
// Measurement IDs are deterministic SHA-256 hashes of stationID|timestamp.
// A station never produces two readings for the same instant, so the pair
// identifies a measurement, and hashing it makes re-fetches and merges
// idempotent. See [NewMeasurement].
package domain

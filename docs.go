// Package unitconv converts numeric values between units of measurement
// (length, mass, force, torque, density, temperature).
//
// The conversion rules are two fixed lookup tables keyed by the ordered
// (from, to) unit pair: scalar multipliers for linear conversions and six
// affine formulas for temperature scales. Only pairs explicitly present in
// a table are convertible; there is no chaining through intermediate units.
//
// The same [Convert] function backs a cobra command-line front end, an HTTP
// endpoint, and an optional MQTT request/response bridge. Configuration can
// be loaded from YAML files. If no config file is specified, the default
// path(s) will be determined by the first defined value of
// $UNITCONV_CONFIG_PATH, $XDG_CONFIG_HOME/unitconv.yaml, or
// $HOME/.config/unitconv.yaml. In the case of $UNITCONV_CONFIG_PATH, the
// value may be a comma-separated list of paths.
//
// Full documentation is available at:
// https://pkg.go.dev/github.com/lone-faerie/unitconv
package unitconv

// Provides platform-appropriate paths for the newsletter service.
//
// All paths follow XDG conventions on Linux and platform-native conventions
// on macOS and Windows. The name "newsletter" is used as the subdirectory
// under each base path. The configuration file is the one exception: the
// working directory is searched first, matching the original deployment
// layout where config.toml sits next to the binary.
package paths

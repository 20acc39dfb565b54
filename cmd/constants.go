package cmd

// DefaultCompilerBinary describes the compiler binary invoked when --compiler is not provided.
const DefaultCompilerBinary = "scryptc"

// DefaultResultFilename describes the file the compile command writes its assembled result to
// within the output directory.
const DefaultResultFilename = "result.json"

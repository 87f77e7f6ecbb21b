package gitignore

// DefaultGitignore seeds a .gitignore for a workspace that has none.
const DefaultGitignore = `# AI gitignore file
ai.gitignore

# Project-specific ignores
.env
.env.local
`

// DefaultAIGitignore seeds ai.gitignore with common model, checkpoint and
// training data patterns.
const DefaultAIGitignore = `# AI Development Files
*.onnx
*.pt
*.pth
*.h5
*.hdf5
*.pb
*.tflite
*.mlmodel
*.caffemodel
*.params
*.weights
*.bin
*.model

# Model directories
model/
models/
checkpoints/
weights/
pretrained/

# Training data
*.tfrecords
*.recordio
*.mindrecord
*.idx
*.rec

# Temporary files
temp.gitignore
`

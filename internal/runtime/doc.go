// Package runtime manages build containers backed by containerd.
//
// A [Runtime] connects to a containerd daemon and starts containers from
// registry images. Base images are pulled for the target platform, unpacked
// into the snapshotter, and used to create containers with a long-running
// task so commands can be executed inside them. Files move in and out as
// tar streams, and the final filesystem state can be committed and exported
// as an OCI archive with a chosen entrypoint.
//
// Example usage:
//
//	rt, err := runtime.New("/run/containerd/containerd.sock", "newsletter")
//	if err != nil {
//	    return err
//	}
//	defer rt.Close()
//
//	ctr, err := rt.StartContainer(ctx, "alpine:3.20", "runtime-stage", "linux/amd64")
//	if err != nil {
//	    return err
//	}
//	defer ctr.Destroy(ctx)
//
//	result, err := ctr.Exec(ctx, "/bin/sh", "apk add --no-cache ca-certificates", nil, "")
//	if err != nil {
//	    return err
//	}
//
//	if err := ctr.Export(ctx, "dist", []string{"/app/newsletter"}); err != nil {
//	    return err
//	}
package runtime

package main

const indexHTML = `
<!DOCTYPE html>
<html>
  <head>
    <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
    <style type="text/css">
      canvas { border: 1px solid black; cursor: grab; }
    </style>
  </head>
  <body>
    <canvas class="gcode-view" width="600" height="600"></canvas>
    <script type="text/javascript">
document.title = "%s"

const config = {
%s
}

const strokes = [
%s
]
    </script>
    <script type="text/javascript">
let displaySize = 600;
let margin = 20;

console.log("minPos: ", config.minPos)
console.log("maxPos: ", config.maxPos)

let gcodeView = document.querySelector(".gcode-view")
let ctx = gcodeView.getContext("2d")

let spanX = Math.max(config.maxPos.x - config.minPos.x, 1e-9)
let spanY = Math.max(config.maxPos.y - config.minPos.y, 1e-9)
let zoom = (displaySize - 2 * margin) / Math.max(spanX, spanY)
let pan = {x: 0, y: 0}

function toCanvas(pt) {
  return {
    x: margin + pan.x + (pt.x - config.minPos.x) * zoom,
    y: displaySize - margin + pan.y - (pt.y - config.minPos.y) * zoom,
  }
}

gcodeView.onwheel = function(event) {
  event.preventDefault()
  zoom *= Math.exp(-event.deltaY * 0.001)
  console.log("zoom: ", zoom)
  animate()
}

let dragStart = null

gcodeView.onmousedown = function(event) {
  dragStart = {x: event.clientX - pan.x, y: event.clientY - pan.y}
}

gcodeView.onmousemove = function(event) {
  if (dragStart !== null) {
    pan = {x: event.clientX - dragStart.x, y: event.clientY - dragStart.y}
    animate()
  }
}

gcodeView.onmouseup = gcodeView.onmouseleave = function() {
  dragStart = null
}

function drawAxes() {
  let origin = toCanvas({x: 0, y: 0})
  ctx.lineWidth = 1
  ctx.strokeStyle = 'red'
  ctx.beginPath()
  ctx.moveTo(origin.x - 10, origin.y)
  ctx.lineTo(origin.x + 10, origin.y)
  ctx.stroke()
  ctx.strokeStyle = 'green'
  ctx.beginPath()
  ctx.moveTo(origin.x, origin.y - 10)
  ctx.lineTo(origin.x, origin.y + 10)
  ctx.stroke()
}

function animate() {
  ctx.clearRect(0, 0, displaySize, displaySize)
  drawAxes()

  ctx.lineWidth = 1.5
  ctx.strokeStyle = '#1f77b4'
  for (let stroke of strokes) {
    ctx.beginPath()
    stroke.forEach(function(pt, pdx) {
      let p = toCanvas(pt)
      if (pdx === 0) {
        ctx.moveTo(p.x, p.y)
      } else {
        ctx.lineTo(p.x, p.y)
      }
    })
    ctx.stroke()
  }
}
animate();
    </script>
 </body>
</html>
`

package template

// StyleCSS is shared by the epub and pdf exports.
const StyleCSS = `
section.page {
  position: relative;
  margin: 0 auto;
  padding: 20px;
  box-sizing: border-box;
  line-height: 1.6;
  text-align: justify;
  color: #202020;
  page-break-after: always;
  break-after: page;
}

h1 {
  text-align: center;
  font-size: 1.5em;
  margin: 1.5em auto;
  font-weight: bold;
  color: #101010;
}

p {
  margin: 0.4em 0;
  white-space: pre-wrap;
}

p.blank {
  min-height: 1em;
}

img.illustration {
  max-width: 80%;
  height: auto;
  display: block;
  margin: 1em auto;
}

img.background {
  position: absolute;
  top: 0;
  left: 0;
  width: 100%;
  height: 100%;
  object-fit: cover;
  z-index: -1;
}
`
